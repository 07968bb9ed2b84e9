package userstore

// Mutation identifies a directory operation that modifies state. No mutation
// is supported by the proxy.
type Mutation string

// The mutations a general purpose user store offers.
const (
	AddUser                 Mutation = "addUser"
	DeleteUser              Mutation = "deleteUser"
	UpdateCredential        Mutation = "updateCredential"
	UpdateCredentialByAdmin Mutation = "updateCredentialByAdmin"
	SetUserClaimValue       Mutation = "setUserClaimValue"
	SetUserClaimValues      Mutation = "setUserClaimValues"
	DeleteUserClaimValue    Mutation = "deleteUserClaimValue"
	DeleteUserClaimValues   Mutation = "deleteUserClaimValues"
	UpdateUserListOfRole    Mutation = "updateUserListOfRole"
	UpdateRoleListOfUser    Mutation = "updateRoleListOfUser"
	AddRole                 Mutation = "addRole"
	DeleteRole              Mutation = "deleteRole"
	UpdateRoleName          Mutation = "updateRoleName"
	AddRememberMe           Mutation = "addRememberMe"
)

func (m Mutation) String() string {
	return string(m)
}
