package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RankTier is one of the 16 ordered progression levels a learner occupies.
type RankTier string

const (
	RankBeginnerIII     RankTier = "Beginner III"
	RankBeginnerII      RankTier = "Beginner II"
	RankBeginnerI       RankTier = "Beginner I"
	RankIntermediateIII RankTier = "Intermediate III"
	RankIntermediateII  RankTier = "Intermediate II"
	RankIntermediateI   RankTier = "Intermediate I"
	RankAdvancedIV      RankTier = "Advanced IV"
	RankAdvancedIII     RankTier = "Advanced III"
	RankAdvancedII      RankTier = "Advanced II"
	RankAdvancedI       RankTier = "Advanced I"
	RankExpertV         RankTier = "Expert V"
	RankExpertIV        RankTier = "Expert IV"
	RankExpertIII       RankTier = "Expert III"
	RankExpertII        RankTier = "Expert II"
	RankExpertI         RankTier = "Expert I"
	RankProfessional    RankTier = "Professional"
)

// rankLadder is the ordered ladder with per-tier promotion thresholds:
// the number of qualifying sessions required while at a tier to advance to
// the next one. The terminal tier has no threshold.
var rankLadder = []struct {
	Tier      RankTier
	Threshold int
}{
	{RankBeginnerIII, 5},
	{RankBeginnerII, 7},
	{RankBeginnerI, 8},
	{RankIntermediateIII, 10},
	{RankIntermediateII, 12},
	{RankIntermediateI, 14},
	{RankAdvancedIV, 16},
	{RankAdvancedIII, 18},
	{RankAdvancedII, 20},
	{RankAdvancedI, 22},
	{RankExpertV, 25},
	{RankExpertIV, 28},
	{RankExpertIII, 31},
	{RankExpertII, 34},
	{RankExpertI, 37},
	{RankProfessional, 0}, // terminal
}

// InitialRank is the tier a learner starts at.
const InitialRank = RankBeginnerIII

// ladderIndex maps a tier to its position in the ladder, built once at init.
var ladderIndex = func() map[RankTier]int {
	m := make(map[RankTier]int, len(rankLadder))
	for i, step := range rankLadder {
		m[step.Tier] = i
	}
	return m
}()

// IsTerminal reports whether the tier is the top of the ladder.
func (t RankTier) IsTerminal() bool {
	return ladderIndex[t] == len(rankLadder)-1
}

// Threshold returns the sessions required at this tier to advance, and false
// for the terminal tier.
func (t RankTier) Threshold() (int, bool) {
	i, ok := ladderIndex[t]
	if !ok || i == len(rankLadder)-1 {
		return 0, false
	}
	return rankLadder[i].Threshold, true
}

// Next returns the tier above this one, and false at the terminal tier.
func (t RankTier) Next() (RankTier, bool) {
	i, ok := ladderIndex[t]
	if !ok || i == len(rankLadder)-1 {
		return t, false
	}
	return rankLadder[i+1].Tier, true
}

// IsValid reports whether the tier is part of the ladder.
func (t RankTier) IsValid() bool {
	_, ok := ladderIndex[t]
	return ok
}

// LearnerRank is the per-learner progression state. One row per learner,
// created lazily on the first qualifying session.
type LearnerRank struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	LearnerID string `gorm:"uniqueIndex;type:text;not null" json:"learnerId"`
	Learner   User   `gorm:"foreignKey:LearnerID" json:"-"`

	TotalSessions int      `gorm:"default:0" json:"totalSessions"`
	Progress      int      `gorm:"default:0" json:"progress"`
	Rank          RankTier `gorm:"type:text;default:'Beginner III'" json:"rank"`
}

func (lr *LearnerRank) BeforeCreate(tx *gorm.DB) (err error) {
	if lr.ID == "" {
		lr.ID = uuid.New().String()
	}
	if lr.Rank == "" {
		lr.Rank = InitialRank
	}
	return
}

// RequiredSessions returns the threshold for the current tier, and false at
// the terminal tier.
func (lr *LearnerRank) RequiredSessions() (int, bool) {
	return lr.Rank.Threshold()
}

// SessionsToNextRank returns how many qualifying sessions remain until the
// next promotion, or 0 at the terminal tier.
func (lr *LearnerRank) SessionsToNextRank() int {
	required, ok := lr.Rank.Threshold()
	if !ok {
		return 0
	}
	remaining := required - lr.Progress
	if remaining < 0 {
		return 0
	}
	return remaining
}
