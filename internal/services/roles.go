package services

// Claim is one authentication claim as injected by the hosting platform.
type Claim struct {
	Typ string `json:"typ"`
	Val string `json:"val"`
}

// Claim types recognized as role carriers.
const (
	roleClaimType    = "roles"
	roleClaimTypeURI = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

// RoleService maps platform claims to the internal role vocabulary.
type RoleService struct{}

func NewRoleService() *RoleService {
	return &RoleService{}
}

// Resolve filters role claims and maps each value through the fixed lookup.
// Encounter order is preserved and duplicates are kept; unknown values are
// dropped. The result is never nil.
func (s *RoleService) Resolve(claims []Claim) []string {
	roles := []string{}

	for _, claim := range claims {
		if claim.Typ != roleClaimType && claim.Typ != roleClaimTypeURI {
			continue
		}
		if claim.Val == "" {
			continue
		}

		switch claim.Val {
		case "complaintsysadmin":
			roles = append(roles, "complaintsysadmin")
		case "complaintsysuser":
			roles = append(roles, "complaintsysuser")
		case "guest":
			roles = append(roles, "temp_guest")
		}
	}

	return roles
}
