// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package etl builds the service's data files from raw retail exports.

The steps run offline, in order:

  - articles: filter the raw article export to the catalog's product types
  - pairs: count co-purchased article pairs from raw transactions
  - split: cut the pair file into shards (copurchase_part_{i}.csv)
  - images: copy the images of catalog articles into a sample root
  - snapshot: aggregate the shards into a badger snapshot

Articles, pairs and split run as SQL on an embedded DuckDB database, which
reads and writes CSV directly and spills to disk when the transaction join
outgrows memory:

	r, err := etl.Open("", logger)
	if err != nil {
	    return err
	}
	defer r.Close()

	_, err = r.Pairs(ctx, etl.PairsOptions{
	    Articles:     "data/articles_filtered.csv",
	    Transactions: "raw/transactions_train.csv",
	    Output:       "data/copurchase_filtered.csv",
	})
*/
package etl
