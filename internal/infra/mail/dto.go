package mail

type NewLeadEmailData struct {
	Name      string
	LeadTitle string
	Category  string
	City      string
}

type ClaimConfirmationData struct {
	Name      string
	LeadTitle string
}

type OwnerNoticeData struct {
	LeadTitle      string
	ContractorName string
}

type WelcomeEmailData struct {
	Name     string
	TierName string
}

type EmailSender struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	TemplateDir string
}
