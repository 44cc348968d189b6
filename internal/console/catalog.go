// internal/console/catalog.go
package console

// Field is one control of the customer form.
type Field struct {
	Name    string
	Label   string
	Kind    string // select | number
	Options []Option
	Default string
	Step    string
	Hint    string
}

type Option struct {
	Value string
	Label string
}

// Section groups fields on the page.
type Section struct {
	Title  string
	Fields []Field
}

func yesNo() []Option {
	return []Option{{"Yes", "Yes"}, {"No", "No"}}
}

func internetAddOn() []Option {
	return []Option{{"Yes", "Yes"}, {"No", "No"}, {"No internet service", "No internet service"}}
}

// Catalog is the customer form. Defaults are the reference customer used by the prediction
// service's own examples.
var Catalog = []Section{
	{
		Title: "Customer Profile",
		Fields: []Field{
			{Name: "gender", Label: "Gender", Kind: "select", Options: []Option{{"Female", "Female"}, {"Male", "Male"}}, Default: "Female"},
			{Name: "SeniorCitizen", Label: "Senior Citizen", Kind: "select", Options: []Option{{"0", "No"}, {"1", "Yes"}}, Default: "0"},
			{Name: "Partner", Label: "Has Partner", Kind: "select", Options: yesNo(), Default: "Yes"},
			{Name: "Dependents", Label: "Has Dependents", Kind: "select", Options: yesNo(), Default: "No"},
			{Name: "tenure", Label: "Time with Company (months)", Kind: "number", Default: "1", Step: "1", Hint: "Number of months the customer has stayed"},
		},
	},
	{
		Title: "Services",
		Fields: []Field{
			{Name: "PhoneService", Label: "Phone Service", Kind: "select", Options: yesNo(), Default: "No"},
			{Name: "MultipleLines", Label: "Multiple Lines", Kind: "select", Options: []Option{{"Yes", "Yes"}, {"No", "No"}, {"No phone service", "No phone service"}}, Default: "No phone service"},
			{Name: "InternetService", Label: "Internet Service", Kind: "select", Options: []Option{{"DSL", "DSL"}, {"Fiber optic", "Fiber optic"}, {"No", "No"}}, Default: "DSL"},
			{Name: "OnlineSecurity", Label: "Online Security", Kind: "select", Options: internetAddOn(), Default: "No"},
			{Name: "OnlineBackup", Label: "Online Backup", Kind: "select", Options: internetAddOn(), Default: "Yes"},
			{Name: "DeviceProtection", Label: "Device Protection", Kind: "select", Options: internetAddOn(), Default: "No"},
			{Name: "TechSupport", Label: "Tech Support", Kind: "select", Options: internetAddOn(), Default: "No"},
			{Name: "StreamingTV", Label: "Streaming TV", Kind: "select", Options: internetAddOn(), Default: "No"},
			{Name: "StreamingMovies", Label: "Streaming Movies", Kind: "select", Options: internetAddOn(), Default: "No"},
		},
	},
	{
		Title: "Account & Billing",
		Fields: []Field{
			{Name: "Contract", Label: "Contract", Kind: "select", Options: []Option{{"Month-to-month", "Month-to-month"}, {"One year", "One year"}, {"Two year", "Two year"}}, Default: "Month-to-month"},
			{Name: "PaperlessBilling", Label: "Paperless Billing", Kind: "select", Options: yesNo(), Default: "Yes"},
			{Name: "PaymentMethod", Label: "Payment Method", Kind: "select", Options: []Option{
				{"Electronic check", "Electronic check"},
				{"Mailed check", "Mailed check"},
				{"Bank transfer (automatic)", "Bank transfer (automatic)"},
				{"Credit card (automatic)", "Credit card (automatic)"},
			}, Default: "Electronic check"},
			{Name: "MonthlyCharges", Label: "Monthly Bill ($)", Kind: "number", Default: "29.85", Step: "0.01"},
			{Name: "TotalCharges", Label: "Total Charges ($)", Kind: "number", Default: "29.85", Step: "0.01", Hint: "Leave empty for a new customer"},
		},
	},
}

// DefaultValues returns the initial value of every form control.
func DefaultValues() map[string]string {
	values := make(map[string]string)
	for _, section := range Catalog {
		for _, field := range section.Fields {
			values[field.Name] = field.Default
		}
	}
	return values
}
