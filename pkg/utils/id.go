package utils

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a 24-char hex id. Every store backend uses the same shape so
// ids survive a move between Mongo and SQL.
func NewID() string { return primitive.NewObjectID().Hex() }

// IsID reports whether s has the shape produced by NewID.
func IsID(s string) bool { return primitive.IsValidObjectID(s) }
