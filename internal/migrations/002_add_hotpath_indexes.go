package migrations

import "gorm.io/gorm"

// Migration002AddHotPathIndexes adds indexes for the queries the badge
// metrics aggregation and the leaderboard run on nearly every request:
// 1. Feedback rating stats per mentor (mentor_id, rating)
// 2. Group-session counts per mentor (mentor_id, type)
// 3. Forum authorship sums (author_id) on posts and comments
// 4. Leaderboard ordering on learner_ranks (total_sessions DESC)
//
// All indexes are idempotent (IF NOT EXISTS) for safe re-runs.
func Migration002AddHotPathIndexes() Migration {
	return Migration{
		ID:   "002_add_hotpath_indexes",
		Name: "Add indexes for badge aggregation and leaderboard queries",
		Up: func(db *gorm.DB) error {
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_feedback_mentor_rating
					ON session_feedback (mentor_id, rating)`,
				`CREATE INDEX IF NOT EXISTS idx_schedules_mentor_type
					ON schedules (mentor_id, type)`,
				`CREATE INDEX IF NOT EXISTS idx_forum_posts_author
					ON forum_posts (author_id)`,
				`CREATE INDEX IF NOT EXISTS idx_forum_comments_author
					ON forum_comments (author_id)`,
				`CREATE INDEX IF NOT EXISTS idx_learner_ranks_totals
					ON learner_ranks (total_sessions DESC)`,
			}

			for _, stmt := range stmts {
				if err := db.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			return nil
		},
	}
}
