package classification

// DefaultRules returns the built-in keyword rules for bank statement
// descriptions.
func DefaultRules() []Rule {
	return []Rule{
		// Income
		{
			Name:     "Payroll",
			Category: "salary",
			Regex:    `\b(DIRECTDEP|DIRECT\s*DEP|DIR\s*DEP|PAYROLL|SALARY|WAGES)\b`,
			Priority: 100,
		},
		{
			Name:     "Interest",
			Category: "bonus",
			Regex:    `\b(INTEREST|INT\s*EARNED|DIVIDEND|CASH\s*BACK|CASHBACK)\b`,
			Priority: 95,
		},

		// Expenses
		{
			Name:     "Rent",
			Category: "rent",
			Regex:    `\b(RENT|LANDLORD|PROPERTY\s*MGMT|APARTMENTS?)\b`,
			Priority: 90,
		},
		{
			Name:     "Utilities",
			Category: "utilities",
			Regex:    `\b(ELECTRIC|POWER|GAS\s*CO|WATER|SEWER|COMCAST|XFINITY|VERIZON|AT&T|T-MOBILE|INTERNET)\b`,
			Priority: 85,
		},
		{
			Name:     "Bank fees",
			Category: "bills",
			Regex:    `\b(SERVICE\s*FEE|MONTHLY\s*FEE|OVERDRAFT|NSF|ATM\s*FEE|INSURANCE|LOAN\s*PMT|MORTGAGE)\b`,
			Priority: 80,
		},
		{
			Name:     "Groceries and dining",
			Category: "food",
			Regex:    `\b(GROCERY|GROCERIES|SUPERMARKET|WHOLE\s*FOODS|TRADER\s*JOE|SAFEWAY|KROGER|ALDI|STARBUCKS|CAFE|COFFEE|RESTAURANT|PIZZA|DOORDASH|GRUBHUB|UBER\s*EATS)\b`,
			Priority: 70,
		},
		{
			Name:     "Transport",
			Category: "transport",
			Regex:    `\b(UBER|LYFT|TAXI|SHELL|CHEVRON|EXXON|FUEL|PARKING|TRANSIT|METRO|TOLL)\b`,
			Priority: 60,
		},
		{
			Name:     "Health",
			Category: "health",
			Regex:    `\b(PHARMACY|CVS|WALGREENS|DENTAL|MEDICAL|CLINIC|HOSPITAL|DOCTOR)\b`,
			Priority: 60,
		},
		{
			Name:     "Travel",
			Category: "travel",
			Regex:    `\b(AIRLINES?|HOTEL|AIRBNB|EXPEDIA|BOOKING\.COM|MARRIOTT|HILTON)\b`,
			Priority: 55,
		},
		{
			Name:     "Entertainment",
			Category: "entertainment",
			Regex:    `\b(NETFLIX|SPOTIFY|HULU|DISNEY|STEAM|CINEMA|THEATER|THEATRE|TICKETMASTER)\b`,
			Priority: 50,
		},
		{
			Name:     "Education",
			Category: "education",
			Regex:    `\b(TUITION|UNIVERSITY|COLLEGE|COURSERA|UDEMY|BOOKSTORE)\b`,
			Priority: 50,
		},
		{
			Name:     "Shopping",
			Category: "shopping",
			Regex:    `\b(AMAZON|AMZN|TARGET|WALMART|COSTCO|BEST\s*BUY|IKEA|EBAY)\b`,
			Priority: 40,
		},
	}
}
