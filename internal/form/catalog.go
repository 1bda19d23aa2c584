package form

import "moneymaven/internal/core"

// Field names shared by the rule sets and the pages that own the forms.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldFullName        = "fullName"
	FieldName            = "name"
	FieldLastname        = "lastname"
	FieldBirthday        = "birthday"
	FieldCountry         = "country"
	FieldNationality     = "nationality"
	FieldPhoneNumber     = "phoneNumber"
	FieldOccupation      = "occupation"

	FieldItemName              = "itemName"
	FieldPrice                 = "price"
	FieldType                  = "type"
	FieldEmotionAfterPurchase  = "emotionAfterPurchase"
	FieldEmotionAtRegistration = "emotionAtRegistration"

	FieldMonthlyIncome = "monthlyIncome"
	FieldRent          = "rent"
	FieldInsurance     = "insurance"
	FieldTransport     = "transport"
	FieldSubscriptions = "subscriptions"
	FieldOthers        = "others"

	FieldTargetAmount = "targetAmount"
)

// FinancialProfileFields lists the amount fields of the financial profile in
// display order.
var FinancialProfileFields = []string{
	FieldMonthlyIncome, FieldRent, FieldInsurance, FieldTransport, FieldSubscriptions, FieldOthers,
}

func emailRule() Rule {
	return Rule{Field: FieldEmail, Checks: []Check{
		{Tag: TagFilled, Message: "Email is required!"},
		{Tag: TagLooseEmail, Message: "Invalid email format!"},
	}}
}

func passwordRule() Rule {
	return Rule{Field: FieldPassword, Checks: []Check{
		{Tag: TagFilled, Message: "Password is required!"},
		{Tag: "min=6", Message: "Password must be at least 6 characters!"},
	}}
}

func filled(field, message string) Rule {
	return Rule{Field: field, Checks: []Check{{Tag: TagFilled, Message: message}}}
}

// LoginRules validates the login form.
func LoginRules() *Rules {
	return NewRules(emailRule(), passwordRule())
}

// RegistrationRules validates the sign-up form.
func RegistrationRules() *Rules {
	return NewRules(
		filled(FieldFullName, "Full name is required!"),
		filled(FieldLastname, "Lastname is required!"),
		emailRule(),
		Rule{Field: FieldBirthday, Checks: []Check{
			{Tag: TagFilled, Message: "Birthday is required!"},
			{Tag: TagISODate, Message: "Invalid date format (YYYY-MM-DD)!"},
		}},
		filled(FieldCountry, "Country of residence is required!"),
		filled(FieldNationality, "Nationality is required!"),
		Rule{Field: FieldPhoneNumber, Checks: []Check{
			{Tag: TagFilled, Message: "Phone number is required!"},
			{Tag: TagPhone, Message: "Invalid phone number format!"},
		}},
		filled(FieldOccupation, "Occupation is required!"),
		passwordRule(),
		Rule{Field: FieldConfirmPassword, Checks: []Check{
			{Tag: "eqfield", Other: FieldPassword, Message: "Passwords do not match!"},
		}},
	)
}

// ProfileRules validates the profile edit form. The e-mail is read-only.
func ProfileRules() *Rules {
	return NewRules(
		filled(FieldName, "First name is required!"),
		filled(FieldLastname, "Last name is required!"),
	)
}

// ExpenseRules validates the daily expense form.
func ExpenseRules() *Rules {
	return NewRules(
		filled(FieldItemName, "Item name is required!"),
		Rule{Field: FieldPrice, Checks: []Check{
			{Tag: "required", Message: "Valid price is required!"},
			{Tag: TagNumber, Message: "Valid price is required!"},
			{Tag: TagPositive, Message: "Price must be greater than zero!"},
		}},
		Rule{Field: FieldType, Checks: []Check{
			{Tag: OneOf(core.ExpenseTypes), Message: "Invalid expense type!"},
		}},
		Rule{Field: FieldEmotionAfterPurchase, Checks: []Check{
			{Tag: OneOf(core.EmotionsAfterPurchase), Message: "Invalid emotion after purchase!"},
		}},
		Rule{Field: FieldEmotionAtRegistration, Checks: []Check{
			{Tag: OneOf(core.EmotionsAtRegistration), Message: "Invalid emotion at registration!"},
		}},
	)
}

// FinancialProfileRules validates the six amount fields of the financial profile.
func FinancialProfileRules() *Rules {
	rules := make([]Rule, len(FinancialProfileFields))
	for i, field := range FinancialProfileFields {
		rules[i] = Rule{Field: field, Checks: []Check{
			{Tag: "required", Message: "This field is required!"},
			{Tag: TagNumber, Message: "Please enter a valid number!"},
			{Tag: TagNonNegative, Message: "Value cannot be negative!"},
		}}
	}
	return NewRules(rules...)
}

// GoalRules validates the savings goal form.
func GoalRules() *Rules {
	return NewRules(Rule{Field: FieldTargetAmount, Checks: []Check{
		{Tag: "required", Message: "Target amount is required!"},
		{Tag: TagNumber, Message: "Please enter a valid number!"},
		{Tag: TagPositive, Message: "Target amount must be greater than zero!"},
	}})
}
