package entities

import (
	"github.com/fernway/kobold/internal/errors"
)

// Trainer is a user record: where they are, how they are encountering,
// and which creature leads. The dex string holds one flag character
// per national id ('0' unseen, '1' seen, '2' owned).
type Trainer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Region         Region `json:"region"`
	Location       string `json:"location"`
	Field          Field  `json:"field"`
	Level          int    `json:"level"`
	Money          int    `json:"money"`
	LeadCreatureID string `json:"lead_creature_id"`
	Dex            string `json:"dex"`

	// ActiveSwarm names the species currently swarming for this
	// trainer; ActiveRadar marks the radar condition. Either may be
	// empty/false, which excludes the matching population entries.
	ActiveSwarm string `json:"active_swarm,omitempty"`
	ActiveRadar bool   `json:"active_radar,omitempty"`
}

// Dex flag characters
const (
	DexUnseen = '0'
	DexSeen   = '1'
	DexOwned  = '2'
)

// Validate enforces trainer invariants
func (t *Trainer) Validate() error {
	vb := errors.NewValidationBuilder()
	if t.ID == "" {
		vb.RequiredField("ID")
	}
	if t.Region == "" {
		vb.RequiredField("Region")
	}
	return vb.Build()
}

// DexFlag returns the flag character for a national id, or DexUnseen
// when the dex string is too short.
func (t *Trainer) DexFlag(nationalID int) rune {
	idx := nationalID - 1
	if idx < 0 || idx >= len(t.Dex) {
		return DexUnseen
	}
	return rune(t.Dex[idx])
}

// SetDexFlag sets the flag character for a national id, growing the
// dex string with unseen markers as needed. A flag is never lowered.
func (t *Trainer) SetDexFlag(nationalID int, flag rune) {
	idx := nationalID - 1
	if idx < 0 {
		return
	}
	dex := []rune(t.Dex)
	for len(dex) <= idx {
		dex = append(dex, DexUnseen)
	}
	if dex[idx] < flag {
		dex[idx] = flag
	}
	t.Dex = string(dex)
}

// Item is a bag record
type Item struct {
	OwnerID  string `json:"owner_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Holdable bool   `json:"holdable"`
	Category string `json:"category"`
}
