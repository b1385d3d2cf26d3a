package model

import "time"

// Seed returns a fresh copy of the demo collection used when no persisted
// state exists.
func Seed() []Geo {
	return []Geo{
		{
			ID:          "us-new-york",
			Name:        "New York",
			DisplayName: "New York, USA",
			Region:      "North America",
			Events: []Event{
				{
					ID:                "1",
					Title:             "Q4 Town Hall",
					Description:       "Company-wide quarterly update and Q&A session with Roy about how to go A to A",
					StartDateTime:     at(2025, 12, 15, 14, 0),
					Budget:            Budget{Total: 5000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(150),
					Tags:              []string{"quarterly", "all-hands", "leadership"},
				},
				{
					ID:                "2",
					Title:             "Holiday Party",
					Description:       "Annual holiday celebration with dinner and entertainment hosted by Rohan",
					StartDateTime:     at(2025, 12, 20, 18, 0),
					Budget:            Budget{Total: 15000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(200),
					Tags:              []string{"social", "annual", "celebration"},
				},
				{
					ID:                "3",
					Title:             "Tech Workshop: AI & ML",
					Description:       "Hands-on workshop exploring AI and machine learning applications presented by Tim Corp",
					StartDateTime:     at(2026, 1, 10, 10, 0),
					Budget:            Budget{Total: 3000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(50),
					Tags:              []string{"workshop", "technical", "learning"},
				},
				{
					ID:                "7",
					Title:             "Wellness Wednesday: Yoga Session",
					Description:       "Weekly yoga and meditation class for employee wellness",
					StartDateTime:     at(2025, 12, 17, 17, 30),
					Budget:            Budget{Total: 500},
					Status:            StatusPublished,
					ExpectedAttendees: Int(30),
					Tags:              []string{"wellness", "recurring", "health"},
				},
				{
					ID:                "9",
					Title:             "Engineering Happy Hour",
					Description:       "Casual networking event for engineering team",
					StartDateTime:     at(2025, 12, 19, 18, 0),
					Budget:            Budget{Total: 2000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(60),
					Tags:              []string{"social", "networking", "engineering"},
				},
				{
					ID:                "11",
					Title:             "Diversity & Inclusion Workshop",
					Description:       "Interactive workshop focused on building an inclusive workplace culture",
					StartDateTime:     at(2026, 1, 22, 10, 0),
					Budget:            Budget{Total: 4500},
					Status:            StatusPublished,
					ExpectedAttendees: Int(100),
					Tags:              []string{"workshop", "training", "culture"},
				},
				{
					ID:                "14",
					Title:             "New Hire Orientation",
					Description:       "Onboarding session for new employees joining in December",
					StartDateTime:     at(2025, 12, 16, 9, 0),
					Budget:            Budget{Total: 1200},
					Status:            StatusPublished,
					ExpectedAttendees: Int(25),
					Tags:              []string{"onboarding", "training", "hr"},
				},
				{
					ID:                "16",
					Title:             "Team Bowling Night",
					Description:       "Fun team building activity at local bowling alley",
					StartDateTime:     at(2025, 11, 5, 19, 0),
					Budget:            Budget{Total: 3500},
					Status:            StatusCompleted,
					ExpectedAttendees: Int(45),
					ActualAttendees:   Int(42),
					Tags:              []string{"social", "team-building", "fun"},
				},
				{
					ID:                "19",
					Title:             "Annual Company Picnic",
					Description:       "Family-friendly outdoor event with games, food, and entertainment",
					StartDateTime:     at(2025, 8, 10, 11, 0),
					Budget:            Budget{Total: 22000},
					Status:            StatusCompleted,
					ExpectedAttendees: Int(350),
					ActualAttendees:   Int(380),
					Tags:              []string{"annual", "family", "outdoor"},
				},
				{
					ID:                "21",
					Title:             "Holiday Cookie Exchange",
					Description:       "Festive cookie exchange and decorating contest",
					StartDateTime:     at(2025, 12, 19, 15, 0),
					Budget:            Budget{Total: 600},
					Status:            StatusPublished,
					ExpectedAttendees: Int(35),
					Tags:              []string{"holiday", "social", "fun"},
				},
				{
					ID:                "23",
					Title:             "Thanksgiving Potluck",
					Description:       "Company potluck celebration with traditional Thanksgiving dishes",
					StartDateTime:     at(2025, 11, 26, 12, 0),
					Budget:            Budget{Total: 2500},
					Status:            StatusCompleted,
					ExpectedAttendees: Int(85),
					ActualAttendees:   Int(92),
					Tags:              []string{"holiday", "social", "celebration"},
				},
				{
					ID:                "24",
					Title:             "Product Design Sprint",
					Description:       "Week-long intensive design thinking workshop for product team",
					StartDateTime:     at(2026, 1, 20, 9, 0),
					Budget:            Budget{Total: 8500},
					Status:            StatusPublished,
					ExpectedAttendees: Int(40),
					Tags:              []string{"workshop", "product", "design"},
				},
				{
					ID:                "25",
					Title:             "Coffee Chat: Career Paths",
					Description:       "Informal discussion about career development over coffee",
					StartDateTime:     at(2025, 12, 18, 10, 0),
					Budget:            Budget{Total: 300},
					Status:            StatusPublished,
					ExpectedAttendees: Int(20),
					Tags:              []string{"networking", "career", "informal"},
				},
				{
					ID:                "26",
					Title:             "Customer Success Summit",
					Description:       "Strategic planning session for customer success team",
					StartDateTime:     at(2026, 2, 15, 9, 0),
					Budget:            Budget{Total: 12000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(75),
					Tags:              []string{"summit", "strategy", "customer-success"},
				},
				{
					ID:                "27",
					Title:             "Friday Trivia Night",
					Description:       "Weekly trivia competition with prizes and snacks",
					StartDateTime:     at(2025, 12, 20, 17, 0),
					Budget:            Budget{Total: 800},
					Status:            StatusPublished,
					ExpectedAttendees: Int(50),
					Tags:              []string{"social", "recurring", "fun"},
				},
				{
					ID:                "28",
					Title:             "Code Review Workshop",
					Description:       "Best practices for effective code reviews",
					StartDateTime:     at(2026, 1, 8, 14, 0),
					Budget:            Budget{Total: 1500},
					Status:            StatusPublished,
					ExpectedAttendees: Int(35),
					Tags:              []string{"workshop", "technical", "engineering"},
				},
				{
					ID:                "29",
					Title:             "Marketing Strategy Offsite",
					Description:       "Two-day offsite for Q1 marketing planning",
					StartDateTime:     at(2026, 1, 27, 8, 0),
					Budget:            Budget{Total: 18000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(30),
					Tags:              []string{"offsite", "strategy", "marketing"},
				},
				{
					ID:                "30",
					Title:             "Women in Tech Luncheon",
					Description:       "Networking lunch for women in technology",
					StartDateTime:     at(2025, 12, 17, 12, 0),
					Budget:            Budget{Total: 2500},
					Status:            StatusPublished,
					ExpectedAttendees: Int(45),
					Tags:              []string{"networking", "diversity", "community"},
				},
				{
					ID:                "31",
					Title:             "Startup Pitch Competition",
					Description:       "Internal innovation showcase with employee ideas",
					StartDateTime:     at(2026, 3, 5, 13, 0),
					Budget:            Budget{Total: 6000},
					Status:            StatusDraft,
					ExpectedAttendees: Int(100),
					Tags:              []string{"innovation", "competition", "showcase"},
				},
				{
					ID:                "32",
					Title:             "Spring Cleaning: Codebase Edition",
					Description:       "Hackday focused on technical debt and refactoring",
					StartDateTime:     at(2026, 3, 20, 9, 0),
					Budget:            Budget{Total: 4000},
					Status:            StatusDraft,
					ExpectedAttendees: Int(60),
					Tags:              []string{"hackathon", "technical", "engineering"},
				},
				{
					ID:                "33",
					Title:             "Mental Health Awareness Workshop",
					Description:       "Session on workplace mental health and wellness resources",
					StartDateTime:     at(2026, 1, 29, 15, 0),
					Budget:            Budget{Total: 3500},
					Status:            StatusPublished,
					ExpectedAttendees: Int(80),
					Tags:              []string{"wellness", "workshop", "health"},
				},
				{
					ID:                "34",
					Title:             "Game Night Extravaganza",
					Description:       "Board games, video games, and pizza party",
					StartDateTime:     at(2025, 12, 27, 18, 0),
					Budget:            Budget{Total: 1800},
					Status:            StatusPublished,
					ExpectedAttendees: Int(55),
					Tags:              []string{"social", "fun", "games"},
				},
				{
					ID:                "35",
					Title:             "Q1 Financial Review",
					Description:       "Finance team presentation on company performance",
					StartDateTime:     at(2026, 4, 10, 10, 0),
					Budget:            Budget{Total: 2000},
					Status:            StatusDraft,
					ExpectedAttendees: Int(150),
					Tags:              []string{"quarterly", "finance", "all-hands"},
				},
			},
		},
		{
			ID:          "us-san-francisco",
			Name:        "San Francisco",
			DisplayName: "San Francisco, USA",
			Region:      "North America",
			Events: []Event{
				{
					ID:                "6",
					Title:             "Product Launch Gala",
					Description:       "Grand celebration for our new product line with media coverage and VIP guests",
					StartDateTime:     at(2025, 12, 18, 19, 0),
					Budget:            Budget{Total: 45000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(300),
					Tags:              []string{"product", "celebration", "vip"},
				},
				{
					ID:                "10",
					Title:             "Q3 All Hands Meeting",
					Description:       "Company-wide update on Q3 performance and future roadmap",
					StartDateTime:     at(2025, 9, 20, 13, 0),
					Budget:            Budget{Total: 6000},
					Status:            StatusCompleted,
					ExpectedAttendees: Int(180),
					ActualAttendees:   Int(175),
					Tags:              []string{"quarterly", "all-hands", "leadership"},
				},
				{
					ID:                "12",
					Title:             "Spring Hackathon",
					Description:       "48-hour hackathon with prizes for innovative solutions",
					StartDateTime:     at(2026, 3, 14, 9, 0),
					Budget:            Budget{Total: 18000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(80),
					Tags:              []string{"hackathon", "technical", "competition"},
				},
				{
					ID:                "15",
					Title:             "Data Science Conference",
					Description:       "Multi-day conference featuring industry leaders in data science and analytics",
					StartDateTime:     at(2026, 2, 10, 8, 0),
					Budget:            Budget{Total: 55000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(500),
					Tags:              []string{"conference", "data-science", "learning"},
				},
				{
					ID:                "18",
					Title:             "Lunch & Learn: Cybersecurity",
					Description:       "Educational session on cybersecurity best practices with lunch provided",
					StartDateTime:     at(2025, 12, 17, 12, 0),
					Budget:            Budget{Total: 800},
					Status:            StatusPublished,
					ExpectedAttendees: Int(40),
					Tags:              []string{"lunch-learn", "security", "training"},
				},
				{
					ID:                "20",
					Title:             "Q1 Product Demo Day",
					Description:       "Showcase of Q1 product developments and innovations",
					StartDateTime:     at(2026, 3, 25, 14, 0),
					Budget:            Budget{Total: 7500},
					Status:            StatusDraft,
					ExpectedAttendees: Int(90),
					Tags:              []string{"quarterly", "product", "showcase"},
				},
			},
		},
		{
			ID:          "uk-london",
			Name:        "London",
			DisplayName: "London, UK",
			Region:      "EMEA",
			Events: []Event{
				{
					ID:                "8",
					Title:             "Sales Kickoff 2026",
					Description:       "Annual sales team kickoff with training, team building, and goal setting",
					StartDateTime:     at(2026, 1, 15, 9, 0),
					Budget:            Budget{Total: 35000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(250),
					Tags:              []string{"annual", "sales", "training"},
				},
				{
					ID:                "13",
					Title:             "Client Appreciation Dinner",
					Description:       "Exclusive dinner event for top-tier clients",
					StartDateTime:     at(2025, 12, 22, 19, 30),
					Budget:            Budget{Total: 28000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(50),
					Tags:              []string{"client", "vip", "dinner"},
				},
				{
					ID:                "17",
					Title:             "Leadership Training Retreat",
					Description:       "Three-day leadership development program for managers",
					StartDateTime:     at(2026, 1, 28, 8, 0),
					Budget:            Budget{Total: 42000},
					Status:            StatusPublished,
					ExpectedAttendees: Int(35),
					Tags:              []string{"leadership", "training", "retreat"},
				},
				{
					ID:                "22",
					Title:             "Career Development Fair",
					Description:       "Internal career fair with workshops on professional development",
					StartDateTime:     at(2026, 2, 5, 10, 0),
					Budget:            Budget{Total: 9500},
					Status:            StatusPublished,
					ExpectedAttendees: Int(150),
					Tags:              []string{"career", "workshop", "development"},
				},
			},
		},
		{
			ID:          "global",
			Name:        "Global",
			DisplayName: "Global Events",
			Region:      "Global",
			Events: []Event{
				{
					ID:                "4",
					Title:             "Summer Kickoff BBQ",
					Description:       "Team building event with food, games, and networking",
					StartDateTime:     at(2025, 6, 15, 12, 0),
					Budget:            Budget{Total: 8000},
					Status:            StatusCompleted,
					ExpectedAttendees: Int(120),
					ActualAttendees:   Int(105),
					Tags:              []string{"social", "team-building", "outdoor"},
				},
				{
					ID:                "5",
					Title:             "Q2 Strategy Summit",
					Description:       "Leadership summit to align on H2 priorities and goals",
					StartDateTime:     at(2025, 4, 20, 9, 0),
					Budget:            Budget{Total: 12000},
					Status:            StatusCompleted,
					ExpectedAttendees: Int(75),
					ActualAttendees:   Int(82),
					Tags:              []string{"quarterly", "strategy", "leadership"},
				},
			},
		},
	}
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}
