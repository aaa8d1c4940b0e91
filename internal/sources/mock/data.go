package mock

import "rural-assist/internal/models"

type facilityEntry struct {
	pincode    string
	facilities []models.HealthFacility
}

var facilityTable = []facilityEntry{
	{"110001", []models.HealthFacility{
		{
			Name:       "Ram Manohar Lohia Hospital",
			Type:       "Government Hospital",
			Address:    "Baba Kharak Singh Marg, New Delhi",
			Pincode:    "110001",
			District:   "New Delhi",
			State:      "Delhi",
			Phone:      "011-23365525",
			Services:   []string{"Emergency", "General Medicine", "Surgery", "Cardiology"},
			DistanceKm: models.Float64Ptr(2.5),
		},
		{
			Name:       "Central Delhi PHC",
			Type:       "Primary Health Centre",
			Address:    "Connaught Place, New Delhi",
			Pincode:    "110001",
			District:   "New Delhi",
			State:      "Delhi",
			Phone:      "011-23341234",
			Services:   []string{"OPD", "Vaccination", "Maternal Care"},
			DistanceKm: models.Float64Ptr(1.2),
		},
	}},
	{"560001", []models.HealthFacility{
		{
			Name:       "Bowring and Lady Curzon Hospital",
			Type:       "Government Hospital",
			Address:    "Shivaji Nagar, Bangalore",
			Pincode:    "560001",
			District:   "Bangalore Urban",
			State:      "Karnataka",
			Phone:      "080-22227979",
			Services:   []string{"Emergency", "General Medicine", "Pediatrics"},
			DistanceKm: models.Float64Ptr(3.0),
		},
	}},
	{"400001", []models.HealthFacility{
		{
			Name:       "JJ Hospital",
			Type:       "Government Hospital",
			Address:    "Byculla, Mumbai",
			Pincode:    "400001",
			District:   "Mumbai",
			State:      "Maharashtra",
			Phone:      "022-23735555",
			Services:   []string{"Emergency", "Trauma", "General Medicine"},
			DistanceKm: models.Float64Ptr(4.5),
		},
	}},
}

type commodityBase struct {
	name  string
	price float64
}

var commodityBases = []commodityBase{
	{"wheat", 2500},
	{"rice", 3000},
	{"onion", 2000},
	{"potato", 1500},
	{"tomato", 3500},
	{"dal", 8000},
	{"sugar", 4000},
}

var commodityStates = []string{"Delhi", "Maharashtra", "Karnataka", "Punjab", "Uttar Pradesh"}

type schemeEntry struct {
	key    string
	scheme models.SchemeInfo
}

var schemeTable = []schemeEntry{
	{"pmay", models.SchemeInfo{
		SchemeName:  "Pradhan Mantri Awas Yojana",
		Description: "PMAY aims to provide affordable housing to all eligible families in urban and rural areas by 2024.",
		Eligibility: []string{
			"Economically Weaker Section (EWS) families",
			"Low Income Group (LIG) families",
			"Middle Income Group (MIG) families",
			"First-time home buyers",
			"Families without pucca house",
		},
		Benefits: []string{
			"Interest subsidy on home loans up to Rs. 2.67 lakh",
			"Direct financial assistance for house construction",
			"Technical support and guidance",
			"Access to institutional credit",
		},
		ApplicationProcess: []string{
			"Visit nearest Common Service Center or apply online",
			"Fill application form with required details",
			"Submit necessary documents",
			"Verification by local authorities",
			"Approval and fund disbursement",
		},
		RequiredDocuments: []string{
			"Aadhaar Card",
			"Income Certificate",
			"Bank Account Details",
			"Caste Certificate (if applicable)",
			"Property documents (if any)",
			"Passport size photographs",
		},
		OfficialWebsite: "https://pmayg.nic.in",
		Helpline:        "1800-11-6446",
	}},
	{"jan_aushadhi", models.SchemeInfo{
		SchemeName:  "Pradhan Mantri Bhartiya Janaushadhi Pariyojana",
		Description: "PMBJP aims to provide quality medicines at affordable prices to all through dedicated outlets called Janaushadhi Stores.",
		Eligibility: []string{
			"All citizens can benefit from this scheme",
			"No income or category restrictions",
			"Available at Janaushadhi stores across India",
		},
		Benefits: []string{
			"Medicines at 50-90% lower prices",
			"Quality assured generic medicines",
			"Wide range of medicines available",
			"Easy accessibility through stores",
		},
		ApplicationProcess: []string{
			"Visit nearest Janaushadhi store",
			"Show prescription from registered doctor",
			"Purchase required medicines",
			"No application process required",
		},
		RequiredDocuments: []string{
			"Doctor's prescription",
			"Identity proof (optional)",
		},
		OfficialWebsite: "https://janaushadhi.gov.in",
		Helpline:        "1800-180-5080",
	}},
}

var pincodeTable = map[string]models.PincodeInfo{
	"110001": {
		Pincode:    "110001",
		PostOffice: "Parliament Street",
		District:   "New Delhi",
		State:      "Delhi",
		Region:     "Delhi",
		Division:   "New Delhi",
		Circle:     "Delhi",
		Villages:   []string{"Connaught Place", "Janpath", "Parliament Street"},
	},
	"560001": {
		Pincode:    "560001",
		PostOffice: "Bangalore GPO",
		District:   "Bangalore Urban",
		State:      "Karnataka",
		Region:     "Bangalore",
		Division:   "Bangalore",
		Circle:     "Karnataka",
		Villages:   []string{"Shivaji Nagar", "Bangalore Cantonment", "High Grounds"},
	},
	"400001": {
		Pincode:    "400001",
		PostOffice: "Mumbai GPO",
		District:   "Mumbai",
		State:      "Maharashtra",
		Region:     "Mumbai",
		Division:   "Mumbai",
		Circle:     "Maharashtra",
		Villages:   []string{"Fort", "Ballard Estate", "Kala Ghoda"},
	},
}

// representativeTable is keyed by normalized constituency name.
var representativeTable = map[string][]models.PoliticalRepresentative{
	"new_delhi": {
		{
			Name:         "Sample MLA",
			Position:     "MLA",
			Constituency: "New Delhi",
			Party:        "Sample Party",
			ContactInfo: map[string]string{
				"phone": "011-23456789",
				"email": "mla.newdelhi@example.com",
			},
			OfficeAddress: "Delhi Assembly, New Delhi",
			Achievements:  []string{"Improved local infrastructure", "Healthcare facility upgrades", "Education initiatives"},
			Source:        "mock_data",
		},
		{
			Name:         "Sample MP",
			Position:     "MP",
			Constituency: "New Delhi",
			Party:        "Sample Party",
			ContactInfo: map[string]string{
				"phone": "011-23456790",
				"email": "mp.newdelhi@example.com",
			},
			OfficeAddress: "Parliament House, New Delhi",
			Achievements:  []string{"Policy advocacy", "Development projects", "Public welfare initiatives"},
			Source:        "mock_data",
		},
	},
}

type faqEntry struct {
	key string
	faq models.FAQAnswer
}

var faqTable = []faqEntry{
	{"ration_card", models.FAQAnswer{
		Question: "How to apply for ration card?",
		Answer:   "To apply for a ration card: 1) Visit your local Food & Civil Supplies office, 2) Fill the application form, 3) Submit required documents (Aadhaar, address proof, income certificate), 4) Pay the application fee, 5) Wait for verification and approval.",
		Category: "food_security",
	}},
	{"aadhaar", models.FAQAnswer{
		Question: "What documents are needed for Aadhaar card?",
		Answer:   "For Aadhaar enrollment you need: 1) Proof of Identity (PAN card, passport, driving license), 2) Proof of Address (utility bills, bank statement, rent agreement), 3) Date of Birth proof (birth certificate, school certificate). Visit nearest Aadhaar center for enrollment.",
		Category: "identity",
	}},
	{"voter_id", models.FAQAnswer{
		Question: "How to register for Voter ID?",
		Answer:   "To register for Voter ID: 1) Visit National Voters' Service Portal (nvsp.in), 2) Fill Form 6 for new registration, 3) Upload required documents, 4) Submit application online or at local election office, 5) Wait for verification by election officials.",
		Category: "voting",
	}},
	{"pan_card", models.FAQAnswer{
		Question: "How to apply for PAN card?",
		Answer:   "To apply for PAN card: 1) Visit NSDL or UTIITSL website, 2) Fill Form 49A, 3) Upload photograph and signature, 4) Submit identity and address proof, 5) Pay application fee, 6) Submit application online or at PAN center.",
		Category: "taxation",
	}},
}

const genericFAQAnswer = "I understand you have a question about government services. For specific information, please contact your local government office or visit the official government portal at india.gov.in. You can also call the citizen helpline at 1800-111-555."

var fallbackMessages = []string{
	"I'm sorry, I'm having trouble accessing the latest information right now. Please try again in a few minutes or contact your local government office for immediate assistance.",
	"The service is temporarily unavailable. For urgent queries, please call the citizen helpline at 1800-111-555 or visit your nearest Common Service Center.",
	"I apologize for the inconvenience. The system is currently experiencing technical difficulties. Please retry your query or seek assistance from local authorities.",
	"Due to technical issues, I cannot provide real-time information at the moment. For government services, please visit india.gov.in or contact local offices directly.",
}

// FallbackSuggestions accompany every fallback message.
var FallbackSuggestions = []string{
	"Try asking about government schemes",
	"Ask for health facilities near you",
	"Inquire about commodity prices",
	"Get information about your representatives",
}
