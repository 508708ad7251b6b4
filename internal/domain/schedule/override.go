package schedule

// DayOverride is the per-(barber, date) exception record.
type DayOverride struct {
	IsDayBlocked   bool
	AvailableSlots []TimeOfDay
	BlockedSlots   []TimeOfDay
}

// Empty reports whether the override changes nothing and can be dropped.
func (o DayOverride) Empty() bool {
	return !o.IsDayBlocked && len(o.AvailableSlots) == 0 && len(o.BlockedSlots) == 0
}

func (o DayOverride) Whitelist() bool { return len(o.AvailableSlots) > 0 }

func (o DayOverride) IsBlocked(t TimeOfDay) bool {
	return ContainsSlot(o.BlockedSlots, t)
}

// PatchMode governs how AvailableSlots of a patch combine with the stored set.
type PatchMode string

const (
	ModeMerge   PatchMode = "merge"
	ModeReplace PatchMode = "replace"
)

func (m PatchMode) Valid() bool {
	return m == ModeMerge || m == ModeReplace
}

// OverridePatch carries the fields a caller wants to change. Nil means "leave
// as is".
type OverridePatch struct {
	IsDayBlocked   *bool
	AvailableSlots []TimeOfDay
	BlockedSlots   []TimeOfDay
	Mode           PatchMode
}

// ApplyPatch returns the override that results from applying p to current
// (nil when there is no stored row). BlockedSlots only ever grow here.
func ApplyPatch(current *DayOverride, p OverridePatch) DayOverride {
	var next DayOverride
	if current != nil {
		next = DayOverride{
			IsDayBlocked:   current.IsDayBlocked,
			AvailableSlots: NormalizeSlots(current.AvailableSlots),
			BlockedSlots:   NormalizeSlots(current.BlockedSlots),
		}
	} else {
		next = DayOverride{AvailableSlots: []TimeOfDay{}, BlockedSlots: []TimeOfDay{}}
	}

	if p.IsDayBlocked != nil {
		next.IsDayBlocked = *p.IsDayBlocked
	}

	if p.AvailableSlots != nil {
		if p.Mode == ModeReplace {
			next.AvailableSlots = NormalizeSlots(p.AvailableSlots)
		} else {
			next.AvailableSlots = NormalizeSlots(append(next.AvailableSlots, p.AvailableSlots...))
		}
	}

	if len(p.BlockedSlots) > 0 {
		next.BlockedSlots = NormalizeSlots(append(next.BlockedSlots, p.BlockedSlots...))
	}

	return next
}

// RemoveBlockedSlot re-opens a single slot.
func RemoveBlockedSlot(current DayOverride, slot TimeOfDay) DayOverride {
	kept := make([]TimeOfDay, 0, len(current.BlockedSlots))
	for _, s := range current.BlockedSlots {
		if s != slot {
			kept = append(kept, s)
		}
	}
	current.BlockedSlots = kept
	return current
}
