// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package etl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/copurchase"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func newRunner(t *testing.T) *Runner {
	t.Helper()
	r, err := Open("", zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

const rawArticles = `article_id,product_code,prod_name,product_type_name,product_group_name,graphical_appearance_name,colour_group_name,perceived_colour_value_name,perceived_colour_master_name,index_name,detail_desc
108775015,108775,Strap top,Vest top,Garment Upper body,Solid,Black,Dark,Black,Ladieswear,Jersey top with narrow shoulder straps.
108775015,108775,Strap top duplicate,Vest top,Garment Upper body,Solid,White,Light,White,Ladieswear,Duplicate row.
200000001,200000,Slim jeans,Jeans,Garment Lower body,Denim,Blue,Medium Dusty,Blue,Menswear,"Jeans in washed, stretch denim."
300000001,300000,Dog jumper,Dog Wear,Items,Solid,Red,Medium,Red,Divided,Knitted jumper for dogs.
400000001,400000,Midi dress,Dress,Garment Full body,Solid,Green,Medium,Green,Ladieswear,Dress in woven fabric.
500000001,500000,Court sneakers,Sneakers,Shoes,Solid,White,Light,White,Ladieswear,Trainers with lacing.
`

func TestRunner_Articles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "articles.csv"), rawArticles)
	out := filepath.Join(dir, "processed", "articles_filtered.csv")

	r := newRunner(t)
	res, err := r.Articles(context.Background(), in, out)
	if err != nil {
		t.Fatalf("Articles() error = %v", err)
	}
	if res.Rows != 3 || res.Step != StepArticles {
		t.Errorf("result = %+v, want 3 rows", res)
	}

	lines := readLines(t, out)
	if lines[0] != strings.Join(catalog.Columns, ",") {
		t.Errorf("header = %q", lines[0])
	}

	cat, stats, err := catalog.LoadFile(out)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cat.Len() != 3 || stats.Skipped != 0 {
		t.Fatalf("catalog len = %d, skipped = %d", cat.Len(), stats.Skipped)
	}
	top, err := cat.Lookup(108775015)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if top.Name != "Strap top" {
		t.Errorf("duplicate kept %q, want first row", top.Name)
	}
	jeans, err := cat.Lookup(200000001)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if jeans.Description != "Jeans in washed, stretch denim." {
		t.Errorf("description = %q", jeans.Description)
	}
	for _, id := range []int64{300000001, 400000001} {
		if cat.Contains(id) {
			t.Errorf("article %d should be filtered out", id)
		}
	}
}

func TestRunner_InvalidInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := newRunner(t)
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
	}{
		{"missing articles input", func() error {
			_, err := r.Articles(ctx, filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"))
			return err
		}},
		{"empty articles output", func() error {
			in := writeFile(t, filepath.Join(dir, "a.csv"), rawArticles)
			_, err := r.Articles(ctx, in, "")
			return err
		}},
		{"directory as transactions", func() error {
			in := writeFile(t, filepath.Join(dir, "b.csv"), rawArticles)
			_, err := r.Pairs(ctx, PairsOptions{Articles: in, Transactions: dir, Output: filepath.Join(dir, "p.csv")})
			return err
		}},
		{"negative min count", func() error {
			in := writeFile(t, filepath.Join(dir, "c.csv"), rawArticles)
			_, err := r.Pairs(ctx, PairsOptions{Articles: in, Transactions: in, Output: filepath.Join(dir, "p.csv"), MinCount: -1})
			return err
		}},
		{"negative parts", func() error {
			in := writeFile(t, filepath.Join(dir, "d.csv"), "article_id_1,article_id_2,count\n1,2,3\n")
			_, err := r.Split(ctx, in, dir, -2)
			return err
		}},
		{"empty image roots", func() error {
			in := writeFile(t, filepath.Join(dir, "e.csv"), rawArticles)
			_, _, err := r.Images(ctx, in, "", dir)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

const transactions = `t_dat,customer_id,article_id,price,sales_channel_id
2020-01-01,c1,1,0.01,2
2020-01-01,c1,2,0.02,2
2020-01-01,c1,3,0.03,2
2020-01-01,c1,1,0.01,2
2020-01-02,c1,1,0.01,2
2020-01-02,c1,2,0.02,2
2020-01-01,c2,1,0.01,1
2020-01-01,c2,2,0.02,1
2020-01-01,c2,4,0.04,1
2020-01-01,c3,2,0.02,2
2020-01-01,c3,3,0.03,2
`

func TestRunner_Pairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		minCount int
		want     []string
	}{
		{
			name: "default min count",
			want: []string{"1,2,3", "2,3,2"},
		},
		{
			name:     "all pairs",
			minCount: 1,
			want:     []string{"1,2,3", "2,3,2", "1,3,1"},
		},
		{
			name:     "nothing frequent enough",
			minCount: 10,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			arts := writeFile(t, filepath.Join(dir, "articles.csv"), "article_id,product_type_name\n1,T-shirt\n2,Jeans\n3,Sneakers\n")
			tx := writeFile(t, filepath.Join(dir, "transactions.csv"), transactions)
			out := filepath.Join(dir, "pairs.csv")

			r := newRunner(t)
			res, err := r.Pairs(context.Background(), PairsOptions{
				Articles:     arts,
				Transactions: tx,
				Output:       out,
				MinCount:     tt.minCount,
			})
			if err != nil {
				t.Fatalf("Pairs() error = %v", err)
			}
			if res.Rows != int64(len(tt.want)) {
				t.Errorf("rows = %d, want %d", res.Rows, len(tt.want))
			}

			lines := readLines(t, out)
			if lines[0] != "article_id_1,article_id_2,count" {
				t.Fatalf("header = %q", lines[0])
			}
			got := lines[1:]
			if len(got) != len(tt.want) {
				t.Fatalf("pairs = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pair[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRunner_PairsFeedIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	arts := writeFile(t, filepath.Join(dir, "articles.csv"), "article_id,product_type_name\n1,T-shirt\n2,Jeans\n3,Sneakers\n")
	tx := writeFile(t, filepath.Join(dir, "transactions.csv"), transactions)
	out := filepath.Join(dir, "pairs.csv")

	r := newRunner(t)
	if _, err := r.Pairs(context.Background(), PairsOptions{Articles: arts, Transactions: tx, Output: out}); err != nil {
		t.Fatalf("Pairs() error = %v", err)
	}

	ix, _, err := copurchase.LoadFiles(out)
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	partners := ix.PartnersOf(2)
	if partners[1] != 3 || partners[3] != 2 || len(partners) != 2 {
		t.Errorf("PartnersOf(2) = %v", partners)
	}
}

func TestRunner_Split(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "pairs.csv"), `article_id_1,article_id_2,count
10,11,9
10,12,8
11,12,7
12,13,6
13,14,5
14,15,4
15,16,3
`)
	outDir := filepath.Join(dir, "parts")

	r := newRunner(t)
	res, err := r.Split(context.Background(), in, outDir, 3)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if res.Rows != 7 || len(res.Outputs) != 3 {
		t.Fatalf("result = %+v", res)
	}

	wantRows := []int{3, 3, 1}
	wantFirst := []string{"10,11,9", "12,13,6", "15,16,3"}
	for i, path := range res.Outputs {
		if filepath.Base(path) != ShardName(i+1) {
			t.Errorf("output %d = %s", i, path)
		}
		lines := readLines(t, path)
		if len(lines)-1 != wantRows[i] {
			t.Errorf("shard %d rows = %d, want %d", i+1, len(lines)-1, wantRows[i])
		}
		if lines[1] != wantFirst[i] {
			t.Errorf("shard %d first row = %q, want %q", i+1, lines[1], wantFirst[i])
		}
	}

	ix, stats, err := copurchase.LoadShards(filepath.Join(outDir, "copurchase_part_*.csv"))
	if err != nil {
		t.Fatalf("LoadShards() error = %v", err)
	}
	if stats.Shards != 3 || stats.Rows != 7 || ix.Records() != 7 {
		t.Errorf("stats = %+v, records = %d", stats, ix.Records())
	}
}

func TestRunner_Images(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "raw")
	dst := filepath.Join(dir, "sample")
	writeFile(t, filepath.Join(src, catalog.RelativePath(108775015)), "jpeg-bytes")
	cat := writeFile(t, filepath.Join(dir, "articles.csv"), "article_id,product_type_name\n108775015,Vest top\n200000001,Jeans\n")

	r := newRunner(t)
	_, stats, err := r.Images(context.Background(), cat, src, dst)
	if err != nil {
		t.Fatalf("Images() error = %v", err)
	}
	if stats != (ImageStats{Copied: 1, Missing: 1}) {
		t.Errorf("stats = %+v", stats)
	}
	data, err := os.ReadFile(filepath.Join(dst, "010", "0108775015.jpg"))
	if err != nil || string(data) != "jpeg-bytes" {
		t.Errorf("copied image = %q, %v", data, err)
	}

	_, stats, err = r.Images(context.Background(), cat, src, dst)
	if err != nil {
		t.Fatalf("Images() second run error = %v", err)
	}
	if stats != (ImageStats{Existing: 1, Missing: 1}) {
		t.Errorf("second run stats = %+v", stats)
	}
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "parts", ShardName(1)), "article_id_1,article_id_2,count\n1,2,5\n1,3,1\n")
	writeFile(t, filepath.Join(dir, "parts", ShardName(2)), "article_id_1,article_id_2,count\n1,2,2\n")
	storePath := filepath.Join(dir, "snapshot")

	meta, err := Snapshot(context.Background(), filepath.Join(dir, "parts", "*.csv"), storePath, zerolog.Nop())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if meta.Articles != 3 {
		t.Errorf("meta = %+v, want 3 articles", meta)
	}

	store, err := copurchase.OpenSnapshotStore(storePath)
	if err != nil {
		t.Fatalf("OpenSnapshotStore() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	ix, _, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ix.PartnersOf(1); got[2] != 7 || got[3] != 1 {
		t.Errorf("PartnersOf(1) = %v", got)
	}

	if _, err := Snapshot(context.Background(), filepath.Join(dir, "none", "*.csv"), storePath, zerolog.Nop()); !errors.Is(err, copurchase.ErrDataUnavailable) {
		t.Errorf("Snapshot(no shards) error = %v, want ErrDataUnavailable", err)
	}
}
