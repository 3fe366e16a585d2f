package schedule

import (
	"encoding/json"
	"fmt"

	"github.com/noah-isme/elores-client/internal/models"
)

// Tier is the display class of a grid cell. It picks the cell colour.
type Tier int

const (
	TierEmpty Tier = iota
	TierClass
	TierTutoring
	TierDuty
	TierPending
	TierCancelled
	TierAccepted
	TierConflict
)

// RGB is a display colour.
type RGB struct {
	R, G, B uint8
}

// Hex renders c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var tierInfo = map[Tier]struct {
	name  string
	color RGB
}{
	TierEmpty:     {"EMPTY", RGB{255, 255, 255}},
	TierClass:     {"CLASS", RGB{173, 216, 230}},
	TierTutoring:  {"TUTORING", RGB{221, 160, 221}},
	TierDuty:      {"DUTY", RGB{255, 182, 193}},
	TierPending:   {"PENDING", RGB{255, 215, 0}},
	TierCancelled: {"CANCELLED", RGB{255, 99, 71}},
	TierAccepted:  {"ACCEPTED", RGB{144, 238, 144}},
	TierConflict:  {"CONFLICT", RGB{169, 169, 169}},
}

func (t Tier) String() string {
	if info, ok := tierInfo[t]; ok {
		return info.name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Color returns the fill colour of t.
func (t Tier) Color() RGB {
	return tierInfo[t].color
}

// MarshalJSON encodes the tier name.
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// precedence ranks meeting tiers: conflict over accepted over cancelled
// over pending.
var precedence = map[Tier]int{
	TierPending:   1,
	TierCancelled: 2,
	TierAccepted:  3,
	TierConflict:  4,
}

// EntryTier maps a timetable entry kind onto its tier.
func EntryTier(kind models.EntryKind) Tier {
	switch kind {
	case models.KindTutoring:
		return TierTutoring
	case models.KindDuty:
		return TierDuty
	default:
		return TierClass
	}
}

// StatusTier maps one raw status onto its tier. Unknown statuses are pending.
func StatusTier(raw string) Tier {
	status, ok := models.NormalizeStatus(raw)
	if !ok {
		return TierPending
	}
	switch status {
	case models.StatusConflict:
		return TierConflict
	case models.StatusAccepted:
		return TierAccepted
	case models.StatusDenied, models.StatusCancelled:
		return TierCancelled
	default:
		return TierPending
	}
}

// MeetingTier resolves the tier of a meeting from all the statuses it
// carries, keeping the one with the highest precedence.
func MeetingTier(m models.Meeting) Tier {
	best := TierPending
	for _, raw := range m.Statuses() {
		if t := StatusTier(raw); precedence[t] > precedence[best] {
			best = t
		}
	}
	return best
}
