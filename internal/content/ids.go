package content

import "go.mongodb.org/mongo-driver/bson/primitive"

// ValidateID rejects identifiers that are not 24 character hex object ids.
func ValidateID(label, id string) error {
	if !primitive.IsValidObjectID(id) {
		return InvalidArgument(label + " ID is not valid")
	}
	return nil
}
