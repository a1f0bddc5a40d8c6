package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UIDFromLocals returns the user id set by JWTUidOnly.
func UIDFromLocals(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, MsgNoToken)
	}
	return uid, nil
}

// UIDObjectID returns the caller as an ObjectID. A token whose user id is
// not a valid ObjectID is treated as invalid.
func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	uid, err := UIDFromLocals(c)
	if err != nil {
		return bson.NilObjectID, err
	}
	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return bson.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, MsgInvalidToken)
	}
	return oid, nil
}
