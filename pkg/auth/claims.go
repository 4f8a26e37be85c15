package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	Role        enums.UserRole
	VillageID   *uuid.UUID
	CommunityID *uuid.UUID
	SmeID       *uuid.UUID
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to admin clients. The
// scope IDs ride along so request handling can build the visibility scope
// without a user lookup.
type AccessTokenClaims struct {
	UserID      uuid.UUID      `json:"user_id"`
	Role        enums.UserRole `json:"role"`
	VillageID   *uuid.UUID     `json:"village_id,omitempty"`
	CommunityID *uuid.UUID     `json:"community_id,omitempty"`
	SmeID       *uuid.UUID     `json:"sme_id,omitempty"`
	jwt.RegisteredClaims
}
