package core

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the bearer token issued on login.
type LoginResult struct {
	Token string `json:"token"`
}

// Registration is the sign-up payload. The form's "full name" field is sent as name.
type Registration struct {
	Name        string `json:"name"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	Birthday    string `json:"birthday"`
	Country     string `json:"country"`
	Nationality string `json:"nationality"`
	PhoneNumber string `json:"phoneNumber"`
	Occupation  string `json:"occupation"`
	Password    string `json:"password"`
}

// UserProfile is the personal profile shown on the profile page.
type UserProfile struct {
	Name        string `json:"name"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	Birthday    string `json:"birthday"`
	Country     string `json:"country"`
	Nationality string `json:"nationality"`
	PhoneNumber string `json:"phoneNumber"`
	Occupation  string `json:"occupation"`
}

// FinancialProfile lists monthly income and fixed costs.
type FinancialProfile struct {
	MonthlyIncome float64 `json:"monthlyIncome"`
	Rent          float64 `json:"rent"`
	Insurance     float64 `json:"insurance"`
	Transport     float64 `json:"transport"`
	Subscriptions float64 `json:"subscriptions"`
	Others        float64 `json:"others"`
}

// FixedCosts sums every cost line.
func (p FinancialProfile) FixedCosts() float64 {
	return p.Rent + p.Insurance + p.Transport + p.Subscriptions + p.Others
}
