package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
)

// Scope is the data-visibility envelope derived from an admin user: the role
// plus the tenant IDs the role is bound to. Every list-producing admin query
// goes through one of the Apply helpers below so the rules live in one place
// and badge counts stay consistent with list results.
type Scope struct {
	Role        enums.UserRole
	VillageID   *uuid.UUID
	CommunityID *uuid.UUID
	SmeID       *uuid.UUID
}

// FromUser derives the scope for the provided user record.
func FromUser(user *models.User) Scope {
	if user == nil {
		return Scope{}
	}
	return Scope{
		Role:        user.Role,
		VillageID:   user.VillageID,
		CommunityID: user.CommunityID,
		SmeID:       user.SmeID,
	}
}

// IsSuperAdmin reports whether the scope is unrestricted.
func (s Scope) IsSuperAdmin() bool {
	return s.Role == enums.UserRoleSuperAdmin
}

// deny restricts the query to the empty set. Unknown roles and missing scope
// IDs always land here: fail closed, never throw.
func deny(q *gorm.DB) *gorm.DB {
	return q.Where("1 = 0")
}

// Villages restricts a villages query to what the scope may see.
func (s Scope) Villages(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin, enums.UserRoleCommunityAdmin, enums.UserRoleSmeAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where("villages.id = ?", *s.VillageID)
	default:
		return deny(q)
	}
}

// Communities restricts a communities query to what the scope may see.
func (s Scope) Communities(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where("communities.village_id = ?", *s.VillageID)
	case enums.UserRoleCommunityAdmin, enums.UserRoleSmeAdmin:
		if s.CommunityID == nil {
			return deny(q)
		}
		return q.Where("communities.id = ?", *s.CommunityID)
	default:
		return deny(q)
	}
}

// Smes restricts an SMEs query to what the scope may see.
func (s Scope) Smes(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where("smes.community_id IN (SELECT id FROM communities WHERE village_id = ?)", *s.VillageID)
	case enums.UserRoleCommunityAdmin:
		if s.CommunityID == nil {
			return deny(q)
		}
		return q.Where("smes.community_id = ?", *s.CommunityID)
	case enums.UserRoleSmeAdmin:
		if s.SmeID == nil {
			return deny(q)
		}
		return q.Where("smes.id = ?", *s.SmeID)
	default:
		return deny(q)
	}
}

// Places restricts a places query to what the scope may see.
func (s Scope) Places(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin, enums.UserRoleCommunityAdmin, enums.UserRoleSmeAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where("places.village_id = ?", *s.VillageID)
	default:
		return deny(q)
	}
}

// Categories restricts a categories query to what the scope may see.
func (s Scope) Categories(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin, enums.UserRoleCommunityAdmin, enums.UserRoleSmeAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where("categories.village_id = ?", *s.VillageID)
	default:
		return deny(q)
	}
}

// Offers restricts an offers query to what the scope may see. Offers are
// owned by an SME or directly by a place, so the tenant chain is resolved
// through both parents.
func (s Scope) Offers(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where(
			"offers.sme_id IN (SELECT id FROM smes WHERE community_id IN (SELECT id FROM communities WHERE village_id = ?)) OR offers.place_id IN (SELECT id FROM places WHERE village_id = ?)",
			*s.VillageID, *s.VillageID,
		)
	case enums.UserRoleCommunityAdmin:
		if s.CommunityID == nil {
			return deny(q)
		}
		return q.Where("offers.sme_id IN (SELECT id FROM smes WHERE community_id = ?)", *s.CommunityID)
	case enums.UserRoleSmeAdmin:
		if s.SmeID == nil {
			return deny(q)
		}
		return q.Where("offers.sme_id = ?", *s.SmeID)
	default:
		return deny(q)
	}
}

// Articles restricts an articles query to what the scope may see.
func (s Scope) Articles(q *gorm.DB) *gorm.DB {
	return s.attachable(q, "articles")
}

// Images restricts an images query to what the scope may see.
func (s Scope) Images(q *gorm.DB) *gorm.DB {
	return s.attachable(q, "images")
}

// MediaAssets restricts a media assets query to what the scope may see.
// SME admins read shared village and community media in addition to their
// own, so the rule unions all three matches.
func (s Scope) MediaAssets(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where("media_assets.village_id = ?", *s.VillageID)
	case enums.UserRoleCommunityAdmin:
		if s.CommunityID == nil {
			return deny(q)
		}
		return q.Where("media_assets.community_id = ?", *s.CommunityID)
	case enums.UserRoleSmeAdmin:
		if s.SmeID == nil {
			return deny(q)
		}
		conds := []string{"media_assets.sme_id = ?"}
		args := []any{*s.SmeID}
		if s.VillageID != nil {
			conds = append(conds, "(media_assets.village_id = ? AND media_assets.community_id IS NULL AND media_assets.sme_id IS NULL)")
			args = append(args, *s.VillageID)
		}
		if s.CommunityID != nil {
			conds = append(conds, "(media_assets.community_id = ? AND media_assets.sme_id IS NULL)")
			args = append(args, *s.CommunityID)
		}
		where := conds[0]
		for _, cond := range conds[1:] {
			where += " OR " + cond
		}
		return q.Where(where, args...)
	default:
		return deny(q)
	}
}

// Links restricts a short-links query to what the scope may see.
func (s Scope) Links(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin, enums.UserRoleCommunityAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where("external_links.village_id = ?", *s.VillageID)
	default:
		return deny(q)
	}
}

// Users restricts a users query to what the scope may see. Community admins
// may only list sme_admin accounts inside their community; SME admins see
// nobody.
func (s Scope) Users(q *gorm.DB) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where("users.village_id = ?", *s.VillageID)
	case enums.UserRoleCommunityAdmin:
		if s.CommunityID == nil {
			return deny(q)
		}
		return q.Where("users.community_id = ? AND users.role = ?", *s.CommunityID, enums.UserRoleSmeAdmin)
	default:
		return deny(q)
	}
}

// attachable applies the shared rule for entities carrying the
// village/community/sme scope FK triplet (articles, images).
func (s Scope) attachable(q *gorm.DB, table string) *gorm.DB {
	switch s.Role {
	case enums.UserRoleSuperAdmin:
		return q
	case enums.UserRoleVillageAdmin:
		if s.VillageID == nil {
			return deny(q)
		}
		return q.Where(table+".village_id = ?", *s.VillageID)
	case enums.UserRoleCommunityAdmin:
		if s.CommunityID == nil {
			return deny(q)
		}
		return q.Where(table+".community_id = ?", *s.CommunityID)
	case enums.UserRoleSmeAdmin:
		if s.SmeID == nil {
			return deny(q)
		}
		return q.Where(table+".sme_id = ?", *s.SmeID)
	default:
		return deny(q)
	}
}
