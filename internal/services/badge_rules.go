package services

// badgeOp is a comparison operator in a badge rule condition.
type badgeOp int

const (
	opGTE badgeOp = iota
	opLTE
	opGT
	opLT
	opEQ
	opNEQ
)

func (op badgeOp) compare(value, threshold float64) bool {
	switch op {
	case opGTE:
		return value >= threshold
	case opLTE:
		return value <= threshold
	case opGT:
		return value > threshold
	case opLT:
		return value < threshold
	case opEQ:
		return value == threshold
	case opNEQ:
		return value != threshold
	}
	return false
}

// condition compares a single metric against a threshold. Boolean metrics are
// exposed as 0/1 by their accessor and compared with opEQ/opNEQ.
type condition struct {
	metric    func(*MentorMetrics) float64
	op        badgeOp
	threshold float64
}

func (c condition) holds(m *MentorMetrics) bool {
	return c.op.compare(c.metric(m), c.threshold)
}

// badgeRule pairs a badge key with either a conjunction (allOf) or a
// disjunction (anyOf) of conditions. Exactly one list is populated per rule.
type badgeRule struct {
	key   string
	allOf []condition
	anyOf []condition
}

func (r badgeRule) satisfied(m *MentorMetrics) bool {
	if len(r.allOf) > 0 {
		for _, c := range r.allOf {
			if !c.holds(m) {
				return false
			}
		}
		return true
	}
	for _, c := range r.anyOf {
		if c.holds(m) {
			return true
		}
	}
	return false
}

// Metric accessors
func sessionsCompleted(m *MentorMetrics) float64   { return float64(m.SessionsCompleted) }
func groupSessionsHosted(m *MentorMetrics) float64 { return float64(m.GroupSessionsHosted) }
func uniqueLearners(m *MentorMetrics) float64      { return float64(m.UniqueLearners) }
func avgRating(m *MentorMetrics) float64           { return m.AvgRating }
func ratingsCount(m *MentorMetrics) float64        { return float64(m.RatingsCount) }
func fiveStarCount(m *MentorMetrics) float64       { return float64(m.FiveStarCount) }
func forumPosts(m *MentorMetrics) float64          { return float64(m.ForumPosts) }
func forumComments(m *MentorMetrics) float64       { return float64(m.ForumComments) }
func forumUpvotes(m *MentorMetrics) float64        { return float64(m.ForumUpvotes) }
func credentialsCount(m *MentorMetrics) float64    { return float64(m.CredentialsCount) }

func isVerified(m *MentorMetrics) float64 {
	if m.IsVerified {
		return 1
	}
	return 0
}

func hasCredentialsFolder(m *MentorMetrics) float64 {
	if m.HasCredentialsFolder {
		return 1
	}
	return 0
}

// badgeRules is the static rule catalog, paired 1:1 by key with the badge
// definitions seeded in internal/seeds.
var badgeRules = []badgeRule{
	// Experience
	{key: "first_session", allOf: []condition{{sessionsCompleted, opGTE, 1}}},
	{key: "ten_sessions", allOf: []condition{{sessionsCompleted, opGTE, 10}}},
	{key: "fifty_sessions", allOf: []condition{{sessionsCompleted, opGTE, 50}}},
	{key: "group_host", allOf: []condition{{groupSessionsHosted, opGTE, 1}}},
	{key: "crowd_favorite", allOf: []condition{{uniqueLearners, opGTE, 10}}},

	// Quality
	{key: "rising_star", allOf: []condition{{avgRating, opGTE, 4.5}, {ratingsCount, opGTE, 5}}},
	{key: "top_rated", allOf: []condition{{avgRating, opGTE, 4.8}, {ratingsCount, opGTE, 20}}},
	{key: "perfect_score", allOf: []condition{{fiveStarCount, opGTE, 10}}},

	// Community
	{key: "forum_regular", anyOf: []condition{{forumPosts, opGTE, 5}, {forumComments, opGTE, 20}}},
	{key: "community_voice", allOf: []condition{{forumUpvotes, opGTE, 25}}},

	// Trust
	{key: "verified_mentor", allOf: []condition{{isVerified, opEQ, 1}}},
	{key: "credentialed", anyOf: []condition{{credentialsCount, opGTE, 1}, {hasCredentialsFolder, opEQ, 1}}},
}

// EvaluateBadges returns the set of badge keys the metrics currently satisfy.
// Pure function, no I/O.
func EvaluateBadges(m *MentorMetrics) []string {
	if m == nil {
		return nil
	}
	var keys []string
	for _, r := range badgeRules {
		if r.satisfied(m) {
			keys = append(keys, r.key)
		}
	}
	return keys
}

// BadgeRuleKeys returns every key in the rule catalog (seeder sanity check).
func BadgeRuleKeys() []string {
	keys := make([]string, 0, len(badgeRules))
	for _, r := range badgeRules {
		keys = append(keys, r.key)
	}
	return keys
}
