package validate

// MaxImageBytes caps profile image uploads at 2 MB.
const MaxImageBytes = 2 << 20

// LoginRules covers the sign-in form.
func LoginRules() []Rule {
	return []Rule{
		{Field: "username", Label: "Username", Required: true, Trim: true},
		{Field: "password", Label: "Password", Required: true},
	}
}

// RegisterRules covers the self-service registration form. The wording
// matches the messages the registration page displays.
func RegisterRules() []Rule {
	return []Rule{
		{Field: "name", Label: "Full name", Required: true, Trim: true, MaxLen: 100},
		{Field: "designation", Label: "Designation", MaxLen: 100},
		{Field: "address", Label: "Address", MaxLen: 200},
		{Field: "department", Label: "Department", MaxLen: 100},
		{Field: "joiningDate", Label: "Joining date", Date: true},
		{Field: "skillset", Label: "Skillset", MaxLen: 200},
		{Field: "username", Label: "Username", Required: true, Trim: true, MinLen: 3, MaxLen: 50},
		{Field: "password", Label: "Password", Required: true, MinLen: 8},
		{
			Field: "confirmPassword", Label: "Confirm password",
			Required:        true,
			RequiredMessage: "Please confirm your password.",
			Equals:          "password",
			EqualsMessage:   "Passwords do not match.",
		},
		{Field: "profileImage", Label: "Profile image", Image: true, MaxBytes: MaxImageBytes},
	}
}

// ProfileRules covers the employee self-profile editor.
func ProfileRules() []Rule {
	return []Rule{
		{Field: "name", Label: "Name", Required: true, Trim: true, MaxLen: 100},
		{Field: "designation", Label: "Designation", MaxLen: 100},
		{Field: "address", Label: "Address", MaxLen: 200},
		{Field: "department", Label: "Department", MaxLen: 100},
		{Field: "joiningDate", Label: "Joining date", Date: true},
		{Field: "skillset", Label: "Skillset", MaxLen: 200},
		{Field: "profileImage", Label: "Profile image", Image: true, MaxBytes: MaxImageBytes},
	}
}

// AdminEditRules covers the inline row editor on the admin dashboard.
func AdminEditRules() []Rule {
	return []Rule{
		{Field: "name", Label: "Name", Required: true, Trim: true, MaxLen: 100},
		{Field: "status", Label: "Status", Required: true, MaxLen: 50},
		{Field: "designation", Label: "Designation", MaxLen: 100},
		{Field: "department", Label: "Department", MaxLen: 100},
		{Field: "joiningDate", Label: "Joining date", Date: true},
		{Field: "skillset", Label: "Skillset", MaxLen: 200},
	}
}
