package models

type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleScanner    UserRole = "scanner"
	UserRoleUnassigned UserRole = "unassigned"
)

func (r UserRole) MarshalJSON() ([]byte, error) {
	return marshalUnit(string(r))
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	tag, err := unmarshalUnit(data, "user role", string(UserRoleAdmin), string(UserRoleScanner), string(UserRoleUnassigned))
	if err != nil {
		return err
	}
	*r = UserRole(tag)
	return nil
}

// ParseUserRole accepts the bare role name used by the admin API.
func ParseUserRole(s string) (UserRole, bool) {
	switch r := UserRole(s); r {
	case UserRoleAdmin, UserRoleScanner, UserRoleUnassigned:
		return r, true
	}
	return "", false
}

type UserProfile struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Role        UserRole `json:"role"`
	PrincipalID string   `json:"principal_id"`
}

type UpdateMyUserProfileRequest struct {
	Username *string `json:"username"`
}

type UpdateUserProfileRequest struct {
	UserID   string    `json:"user_id"`
	Username *string   `json:"username"`
	Role     *UserRole `json:"role"`
}

type DeleteUserProfileRequest struct {
	UserID string `json:"user_id"`
}

type TransferTokenRequest struct {
	LedgerCanisterID string `json:"ledger_canister_id"`
	To               string `json:"to"`
	Amount           uint64 `json:"amount"`
}
