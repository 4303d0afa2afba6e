package jobs

import "time"

// SeedJobs returns the demo internal positions loaded at process start.
func SeedJobs() []Job {
	posted := time.Now().UTC().Format(time.RFC3339)
	return []Job{
		{
			ID:           "job_001",
			Title:        "Senior Project Manager",
			Department:   "Operations",
			Description:  "Lead cross-functional teams to deliver strategic initiatives across the organization. This role offers exposure to executive leadership and the opportunity to shape our operational excellence.",
			Requirements: "Experience in project management, strong stakeholder management skills, analytical mindset, ability to manage multiple priorities",
			Location:     "Main Campus - Building A",
			GrowthPath:   "Leadership track with potential progression to Director of Operations",
			PostedDate:   posted,
			TeamSize:     "12-15 team members",
		},
		{
			ID:           "job_002",
			Title:        "Lead Data Analyst",
			Department:   "Finance",
			Description:  "Join our Finance team to drive data-driven decision making. You'll work directly with CFO leadership to provide insights that shape our financial strategy.",
			Requirements: "Strong analytical skills, experience with financial modeling, proficiency in data visualization tools, understanding of business metrics",
			Location:     "Main Campus - Building B",
			GrowthPath:   "Analytics leadership path with exposure to strategic planning",
			PostedDate:   posted,
			TeamSize:     "5-7 team members",
		},
		{
			ID:           "job_003",
			Title:        "Product Owner",
			Department:   "Digital Innovation",
			Description:  "Drive the product vision for our internal digital transformation initiatives. You'll collaborate with IT and business units to modernize our employee experience.",
			Requirements: "Product management mindset, understanding of agile methodologies, ability to translate business needs to technical requirements, strong communication skills",
			Location:     "Tech Hub - Flexible",
			GrowthPath:   "Product leadership with opportunity to shape digital strategy",
			PostedDate:   posted,
			TeamSize:     "8-10 team members",
		},
		{
			ID:           "job_004",
			Title:        "Team Lead - Customer Success",
			Department:   "Customer Experience",
			Description:  "Lead a team dedicated to ensuring customer satisfaction and retention. This people-focused role combines leadership with hands-on customer engagement.",
			Requirements: "Leadership experience or potential, customer-centric mindset, problem-solving skills, ability to mentor and develop others",
			Location:     "Any Regional Office",
			GrowthPath:   "Management track with path to Head of Customer Success",
			PostedDate:   posted,
			TeamSize:     "8-12 team members",
		},
	}
}
