package content

// Owned is implemented by every resource with a single owning user.
type Owned interface {
	OwnerID() string
}

// RequireOwner fails with PermissionDenied unless callerID owns resource.
func RequireOwner(resource Owned, callerID, action string) error {
	if callerID == "" || resource.OwnerID() != callerID {
		return PermissionDenied("You do not have permission to " + action)
	}
	return nil
}
