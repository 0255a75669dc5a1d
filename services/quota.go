package services

import "gorm.io/gorm"

// QuotaPolicy decides whether a member may create another post in a som.
// The stock deployment runs with no policy. When one is injected, Create calls
// it inside the creation transaction before the insert; returning an error
// aborts creation and the error is surfaced as-is (wrap ErrValidation to get a
// 400 at the boundary).
type QuotaPolicy func(tx *gorm.DB, memberID, somID uint) error
