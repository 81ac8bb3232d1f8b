package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/akoval/minesweep/internal/sweep"
)

// GameRecord is the row written once a game finishes. In-progress games
// never touch the database.
type GameRecord struct {
	GameRecordID int64              `json:"game_record_id"`
	PlayerID     *int64             `json:"-"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	MineCount    int                `json:"mine_count"`
	Won          bool               `json:"won"`
	PlaytimeMs   int64              `json:"playtime_ms"`
	FinishedAt   pgtype.Timestamptz `json:"finished_at"`
}

type CreateGameRecordParams struct {
	PlayerID   *int64
	Params     sweep.GameParams
	Won        bool
	PlaytimeMs int64
}

func (q *Queries) CreateGameRecord(
	ctx context.Context, params CreateGameRecordParams,
) (*GameRecord, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_record (
			player_id, width, height, mine_count, won, playtime_ms
		)
		VALUES (@player_id, @width, @height, @mine_count, @won, @playtime_ms)
		RETURNING *;`,
		pgx.NamedArgs{
			"player_id":   params.PlayerID,
			"width":       params.Params.Width,
			"height":      params.Params.Height,
			"mine_count":  params.Params.MineCount,
			"won":         params.Won,
			"playtime_ms": params.PlaytimeMs,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameRecord])
}

// Highscore is one leaderboard entry: the fastest wins for a given board
// configuration.
type Highscore struct {
	GameRecordID int64   `json:"game_record_id"`
	Username     *string `json:"username"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	MineCount    int     `json:"mine_count"`
	PlaytimeMs   int64   `json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username *string
	Params   *sweep.GameParams
	Limit    int
}

func (f HighscoreFilter) whereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Params != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mine_count",
		)
		args["width"] = f.Params.Width
		args["height"] = f.Params.Height
		args["mine_count"] = f.Params.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_record_id,
		username,
		width,
		height,
		mine_count,
		playtime_ms
	FROM game_record
		LEFT OUTER JOIN player USING (player_id)
	WHERE won = true
	`

	whereClause, args := filter.whereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}
	query += " ORDER BY playtime_ms"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT @row_limit;"
	args["row_limit"] = limit

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
