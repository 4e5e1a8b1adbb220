package domain

// BusinessDetails is the issuing entity's profile. There is exactly one per
// installation; it lives in the config file and is only mutated through an
// explicit settings save.
type BusinessDetails struct {
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	Address     string `yaml:"address"`
	Phone       string `yaml:"phone"`
	Website     string `yaml:"website"`
	LogoPath    string `yaml:"logo_path"` // path to a PNG/JPEG embedded in exports
	GSTIN       string `yaml:"gstin"`
	StateName   string `yaml:"state_name"`
	StateCode   string `yaml:"state_code"`
	BankName    string `yaml:"bank_name"`
	AccountNo   string `yaml:"account_no"`
	IFSC        string `yaml:"ifsc"`
	Branch      string `yaml:"branch"`
	Declaration string `yaml:"declaration"`
	// DefaultTerms pre-fills the terms-of-delivery block on new invoices.
	DefaultTerms string `yaml:"default_terms"`
}

const (
	DefaultDeclaration = "We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct."
	DefaultTerms       = "1. Goods once sold will not be taken back.\n2. Interest @ 18% p.a. will be charged if payment is not made within due date.\n3. Our responsibility ceases as soon as the goods leave our premises.\n4. Subject to Chennai Jurisdiction."
)

// FillDefaults populates the free-text blocks that must never render empty.
func (b *BusinessDetails) FillDefaults() {
	if b.Declaration == "" {
		b.Declaration = DefaultDeclaration
	}
	if b.DefaultTerms == "" {
		b.DefaultTerms = DefaultTerms
	}
}
