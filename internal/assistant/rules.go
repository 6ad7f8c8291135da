package assistant

// rule binds a set of trigger substrings (OR semantics) to one canned
// response. Rules are evaluated top-down and the first match wins, so the
// order of this table is part of the assistant's observable behavior.
// Do not reorder.
type rule struct {
	// Key names the rule for logs and metrics.
	Key      string
	Triggers []string
	Response string
}

var rules = []rule{
	{
		Key:      "dbt",
		Triggers: []string{"dbt", "transfer", "benefit"},
		Response: "Direct Benefit Transfer (DBT) under the PCR and PoA Acts ensures timely financial assistance to victims. You can track your disbursement status in the Disbursements section. The funds are transferred directly to your Aadhaar-linked bank account.",
	},
	{
		Key:      "case_registration",
		Triggers: []string{"case", "register", "fir"},
		Response: "To register a case, navigate to the Cases section and click \"Register New Case\". You will need to provide incident details, FIR number, and supporting documents. Cases are tracked through CCTNS and eCourts for real-time updates.",
	},
	{
		Key:      "grievance",
		Triggers: []string{"grievance", "complaint", "delay"},
		Response: "For any issues with your case or disbursement, you can submit a grievance in the Grievances section. Our officers will review and resolve your concern within 7 working days. Priority is given based on urgency.",
	},
	{
		Key:      "verification",
		Triggers: []string{"verify", "aadhaar", "digilocker"},
		Response: "Victim verification is done through Aadhaar and DigiLocker integration. Upload your identity proof and caste certificate. The verification process typically takes 2-3 business days. You will receive an email notification once verified.",
	},
	{
		Key:      "tracking",
		Triggers: []string{"status", "track", "check"},
		Response: "You can track your case status, disbursement progress, and grievance resolution in real-time through your dashboard. All updates are also sent via SMS and email to your registered contact information.",
	},
	{
		Key:      "eligibility",
		Triggers: []string{"eligible", "relief", "amount"},
		Response: "Relief amounts vary based on the type of atrocity and case specifics. Immediate relief ranges from ₹25,000 to ₹8,25,000. Rehabilitation assistance is provided separately. Check with your District Social Welfare Officer for specific eligibility.",
	},
	{
		Key:      "documents",
		Triggers: []string{"document", "required", "upload"},
		Response: "Required documents include: Aadhaar card, caste certificate, FIR copy, medical reports (if applicable), bank account details with cancelled cheque, and any other supporting evidence. All documents can be uploaded through DigiLocker for secure verification.",
	},
	{
		Key:      "support",
		Triggers: []string{"help", "support", "contact"},
		Response: "For immediate assistance, contact the National Commission for Scheduled Castes/Tribes helpline or your District Social Welfare Officer. Emergency cases can be escalated through the grievance system with \"Urgent\" priority.",
	},
	{
		Key:      "acts",
		Triggers: []string{"pcr", "poa", "act"},
		Response: "The PCR Act, 1955 addresses civil rights violations and untouchability. The PoA Act, 1989 specifically covers atrocities against SC/ST communities. Both acts provide legal protection, compensation, and rehabilitation for victims.",
	},
	{
		Key:      "marriage_incentive",
		Triggers: []string{"marriage", "inter-caste", "incentive"},
		Response: "Inter-caste marriage incentive scheme provides financial assistance to couples where one partner belongs to SC/ST community. The incentive amount varies by state, typically ₹2.5 lakhs. Apply through the Social Welfare Department with marriage certificate and caste certificates.",
	},
}

// FallbackKey names the no-match outcome in logs and metrics.
const FallbackKey = "fallback"

// fallbackResponse is returned when no rule trigger matches the input.
const fallbackResponse = "I can help you with information about DBT, case registration, grievance submission, document requirements, disbursement tracking, and the PCR/PoA Acts. Please ask me a specific question or visit the respective section in the application."
