package catalog

import "github.com/bobmcallan/citypulse/internal/models"

var builtinDepartments = []models.Department{
	{
		ID:             "water",
		Name:           "Water Supply",
		Icon:           "droplet",
		Description:    "Issues related to water supply, quality, leakage or shortage",
		HelplineNumber: "1916",
		EmailID:        "water@citypulse.gov.in",
	},
	{
		ID:             "garbage",
		Name:           "Garbage Collection",
		Icon:           "trash",
		Description:    "Issues related to waste management, collection or dumping",
		HelplineNumber: "1800-103-1977",
		EmailID:        "garbage@citypulse.gov.in",
	},
	{
		ID:             "roads",
		Name:           "Roads & Traffic",
		Icon:           "road",
		Description:    "Issues related to road conditions, traffic signals or congestion",
		HelplineNumber: "1073",
		EmailID:        "roads@citypulse.gov.in",
	},
	{
		ID:             "electricity",
		Name:           "Electricity (BESCOM)",
		Icon:           "zap",
		Description:    "Issues related to power supply, outages or electrical infrastructure",
		HelplineNumber: "1912",
		EmailID:        "electricity@citypulse.gov.in",
	},
	{
		ID:             "drainage",
		Name:           "Drainage",
		Icon:           "droplet",
		Description:    "Issues related to drainage system, clogging or flooding",
		HelplineNumber: "1916",
		EmailID:        "drainage@citypulse.gov.in",
	},
	{
		ID:             "streetlights",
		Name:           "Street Lights",
		Icon:           "lamp",
		Description:    "Issues related to street lighting, damage or malfunction",
		HelplineNumber: "1800-103-1977",
		EmailID:        "streetlights@citypulse.gov.in",
	},
	{
		ID:             "sewage",
		Name:           "Sewage",
		Icon:           "pipe",
		Description:    "Issues related to sewage system, leakage or blockage",
		HelplineNumber: "1916",
		EmailID:        "sewage@citypulse.gov.in",
	},
	{
		ID:             "parks",
		Name:           "Parks & Playgrounds",
		Icon:           "tree",
		Description:    "Issues related to public parks, playgrounds or green spaces",
		HelplineNumber: "1800-103-1977",
		EmailID:        "parks@citypulse.gov.in",
	},
	{
		ID:             "others",
		Name:           "Others",
		Icon:           "more-horizontal",
		Description:    "Other civic issues not covered in the above categories",
		HelplineNumber: "1800-103-1977",
		EmailID:        "help@citypulse.gov.in",
	},
}

var emergencyContacts = []models.EmergencyCategory{
	{
		Category: "Common Emergencies",
		Contacts: []models.EmergencyContact{
			{Name: "Police Control Room", Number: "100"},
			{Name: "Fire Control Room", Number: "101"},
			{Name: "Ambulance", Number: "108"},
			{Name: "Emergency Disaster Management", Number: "112"},
			{Name: "Women Helpline", Number: "1091"},
		},
	},
	{
		Category: "Municipal Services",
		Contacts: []models.EmergencyContact{
			{Name: "Water Supply Emergency", Number: "1916"},
			{Name: "Electricity (BESCOM) Helpline", Number: "1912"},
			{Name: "Garbage Collection", Number: "1800-103-1977"},
			{Name: "Road & Traffic Issues", Number: "1073"},
			{Name: "Drainage & Sewage", Number: "1916"},
		},
	},
	{
		Category: "Medical Services",
		Contacts: []models.EmergencyContact{
			{Name: "Medical Helpline", Number: "104"},
			{Name: "Blood Bank", Number: "1910"},
			{Name: "COVID-19 Helpline", Number: "1075"},
			{Name: "Mental Health Helpline", Number: "1800-599-0019"},
		},
	},
}

var safetyTips = []models.SafetyTip{
	{
		Title: "Water-Related",
		Tips: []string{
			"Store drinking water in clean containers",
			"Report water contamination immediately",
			"Report water leakages to prevent wastage",
		},
	},
	{
		Title: "Electricity",
		Tips: []string{
			"Stay away from broken power lines",
			"Report power outages promptly",
			"Keep electrical equipment away from water",
		},
	},
	{
		Title: "Roads & Traffic",
		Tips: []string{
			"Report pot holes and damaged roads",
			"Report non-functional traffic signals",
			"Stay clear of waterlogged roads",
		},
	},
	{
		Title: "Waste Management",
		Tips: []string{
			"Segregate waste into wet and dry",
			"Report missed garbage collection",
			"Don't burn garbage in the open",
		},
	},
	{
		Title: "Monsoon Safety",
		Tips: []string{
			"Report clogged drains before monsoon",
			"Avoid waterlogged areas",
			"Report fallen trees or electric poles",
		},
	},
}
