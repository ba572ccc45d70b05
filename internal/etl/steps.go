// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package etl

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/copurchase"
)

// Step names.
const (
	StepArticles = "articles"
	StepPairs    = "pairs"
	StepSplit    = "split"
	StepImages   = "images"
	StepSnapshot = "snapshot"
)

// Defaults of the pair and split steps.
const (
	DefaultMinCount = 2
	DefaultShards   = 5
)

// RemovedProductTypes are dropped from the catalog even if listed elsewhere.
var RemovedProductTypes = []string{
	"Dog Wear", "Slippers", "Outdoor overall", "Outdoor trousers",
	"Pre-walkers", "Sarong", "Robe", "Dungarees",
}

// ShardName returns the file name of shard i (1-based).
func ShardName(i int) string {
	return fmt.Sprintf("copurchase_part_%d.csv", i)
}

// Articles filters a raw article export down to the product types of the
// macro table, drops the removed types, keeps the first row per article id
// and writes the nine catalog columns.
func (r *Runner) Articles(ctx context.Context, input, output string) (Result, error) {
	start := time.Now()
	if err := requireFile(input, "articles input"); err != nil {
		return Result{}, err
	}
	if output == "" {
		return Result{}, fmt.Errorf("%w: articles output path is empty", ErrInvalidInput)
	}

	keep := catalog.ProductTypes()
	sort.Strings(keep)
	cols := strings.Join(catalog.Columns[1:], ", ")

	stage := fmt.Sprintf(`CREATE OR REPLACE TEMP TABLE etl_raw_articles AS
		SELECT * FROM read_csv(%s, header = true, all_varchar = true)`, sqlString(input))
	if err := r.exec(ctx, stage); err != nil {
		return Result{}, fmt.Errorf("read articles: %w", err)
	}

	query := fmt.Sprintf(`
		CREATE OR REPLACE TEMP TABLE etl_articles AS
		SELECT CAST(article_id AS BIGINT) AS article_id, %s
		FROM etl_raw_articles
		WHERE product_type_name IN (%s)
		  AND product_type_name NOT IN (%s)
		QUALIFY row_number() OVER (PARTITION BY CAST(article_id AS BIGINT) ORDER BY rowid) = 1
		ORDER BY rowid`,
		cols, sqlList(keep), sqlList(RemovedProductTypes))
	if err := r.exec(ctx, query); err != nil {
		return Result{}, fmt.Errorf("filter articles: %w", err)
	}

	rows, err := r.count(ctx, "etl_articles")
	if err != nil {
		return Result{}, err
	}
	if err := r.copyTo(ctx, "SELECT * FROM etl_articles", output); err != nil {
		return Result{}, err
	}
	return r.finish(StepArticles, rows, []string{output}, start), nil
}

// PairsOptions configures the pair step.
type PairsOptions struct {
	// Articles is the filtered catalog; only its ids are counted.
	Articles string

	// Transactions is the raw transaction file with t_dat, customer_id and
	// article_id columns.
	Transactions string

	// Output is the pair file to write.
	Output string

	// MinCount drops pairs bought together fewer times. Zero means
	// DefaultMinCount.
	MinCount int
}

// Pairs counts how many baskets contain each unordered pair of catalog
// articles. A basket is one customer on one day; an article counts once per
// basket. Pairs are written with article_id_1 < article_id_2, most frequent
// first.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (r *Runner) Pairs(ctx context.Context, opts PairsOptions) (Result, error) {
	start := time.Now()
	if err := requireFile(opts.Articles, "articles"); err != nil {
		return Result{}, err
	}
	if err := requireFile(opts.Transactions, "transactions"); err != nil {
		return Result{}, err
	}
	if opts.Output == "" {
		return Result{}, fmt.Errorf("%w: pairs output path is empty", ErrInvalidInput)
	}
	minCount := opts.MinCount
	if minCount == 0 {
		minCount = DefaultMinCount
	}
	if minCount < 1 {
		return Result{}, fmt.Errorf("%w: min count must be positive, got %d", ErrInvalidInput, minCount)
	}

	query := fmt.Sprintf(`
		CREATE OR REPLACE TEMP TABLE etl_pairs AS
		WITH kept AS (
			SELECT DISTINCT CAST(article_id AS BIGINT) AS article_id
			FROM read_csv(%s, header = true, all_varchar = true)
		),
		items AS (
			SELECT DISTINCT
				CAST(t.customer_id AS VARCHAR) AS customer_id,
				CAST(t.t_dat AS VARCHAR) AS t_dat,
				CAST(t.article_id AS BIGINT) AS article_id
			FROM read_csv(%s, header = true, all_varchar = true) t
			WHERE CAST(t.article_id AS BIGINT) IN (SELECT article_id FROM kept)
		)
		SELECT
			a.article_id AS %s,
			b.article_id AS %s,
			COUNT(*) AS "%s"
		FROM items a
		JOIN items b
		  ON a.customer_id = b.customer_id
		 AND a.t_dat = b.t_dat
		 AND a.article_id < b.article_id
		GROUP BY a.article_id, b.article_id
		HAVING COUNT(*) >= %d
		ORDER BY 3 DESC, 1, 2`,
		sqlString(opts.Articles), sqlString(opts.Transactions),
		copurchase.ColArticleID1, copurchase.ColArticleID2, copurchase.ColCount, minCount)
	if err := r.exec(ctx, query); err != nil {
		return Result{}, fmt.Errorf("count pairs: %w", err)
	}

	rows, err := r.count(ctx, "etl_pairs")
	if err != nil {
		return Result{}, err
	}
	order := fmt.Sprintf(`ORDER BY "%s" DESC, %s, %s`, copurchase.ColCount, copurchase.ColArticleID1, copurchase.ColArticleID2)
	if err := r.copyTo(ctx, "SELECT * FROM etl_pairs "+order, opts.Output); err != nil {
		return Result{}, err
	}
	return r.finish(StepPairs, rows, []string{opts.Output}, start), nil
}

// Split cuts a pair file into parts shards of ceil(rows/parts) rows each,
// keeping row order, named by ShardName. Every shard is written, including
// empty trailing ones.
func (r *Runner) Split(ctx context.Context, input, outDir string, parts int) (Result, error) {
	start := time.Now()
	if err := requireFile(input, "pairs input"); err != nil {
		return Result{}, err
	}
	if parts == 0 {
		parts = DefaultShards
	}
	if parts < 1 {
		return Result{}, fmt.Errorf("%w: parts must be positive, got %d", ErrInvalidInput, parts)
	}

	query := fmt.Sprintf(`
		CREATE OR REPLACE TEMP TABLE etl_split AS
		SELECT
			CAST(%[2]s AS BIGINT) AS %[2]s,
			CAST(%[3]s AS BIGINT) AS %[3]s,
			CAST("%[4]s" AS BIGINT) AS "%[4]s"
		FROM read_csv(%[1]s, header = true, all_varchar = true)`,
		sqlString(input), copurchase.ColArticleID1, copurchase.ColArticleID2, copurchase.ColCount)
	if err := r.exec(ctx, query); err != nil {
		return Result{}, fmt.Errorf("stage pairs: %w", err)
	}

	total, err := r.count(ctx, "etl_split")
	if err != nil {
		return Result{}, err
	}
	per := (total + int64(parts) - 1) / int64(parts)

	outputs := make([]string, 0, parts)
	for i := 0; i < parts; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		lo, hi := int64(i)*per, min(int64(i+1)*per, total)
		out := filepath.Join(outDir, ShardName(i+1))
		q := fmt.Sprintf(`SELECT %s, %s, "%s" FROM etl_split WHERE rowid >= %d AND rowid < %d ORDER BY rowid`,
			copurchase.ColArticleID1, copurchase.ColArticleID2, copurchase.ColCount, lo, hi)
		if err := r.copyTo(ctx, q, out); err != nil {
			return Result{}, err
		}
		outputs = append(outputs, out)
	}
	return r.finish(StepSplit, total, outputs, start), nil
}

// ArticleIDs returns the distinct article ids of a catalog file in
// ascending order.
func (r *Runner) ArticleIDs(ctx context.Context, catalogPath string) ([]int64, error) {
	if err := requireFile(catalogPath, "catalog"); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT DISTINCT CAST(article_id AS BIGINT) AS id FROM read_csv(%s, header = true, all_varchar = true) ORDER BY id`,
		sqlString(catalogPath)))
	if err != nil {
		return nil, fmt.Errorf("read article ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan article id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
