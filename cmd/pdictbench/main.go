// SPDX-License-Identifier: MIT

// Command pdictbench drives a sequence of inserts and searches against
// a pdict.Dictionary with permuted int32 keys and reports timing,
// mirroring the "wall clock over a synthetic workload" style of the
// teacher repo's cmd driver, but flag-driven instead of a fixed demo.
package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gaissmai/pdict"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	var (
		inserts = flag.Int("i", 1_000_000, "number of keys to insert")
		lookups = flag.Int("s", 1_000_000, "number of searches to perform")
		seed    = flag.Uint64("k", 42, "PRNG seed")
	)
	flag.Parse()

	prng := rand.New(rand.NewPCG(*seed, *seed))
	keys := permutedKeys(prng, *inserts)

	dict, err := pdict.New[pdict.Int32Key, int64](*inserts)
	if err != nil {
		log.Fatalf("pdict.New: %v", err)
	}

	ts := time.Now()
	for i, k := range keys {
		if err := dict.Insert(k, int64(i)); err != nil {
			log.Fatalf("Insert: %v", err)
		}
	}
	insertElapsed := time.Since(ts)

	lookupKeys := keys
	if *lookups < len(keys) {
		lookupKeys = keys[:*lookups]
	}

	ts = time.Now()
	hits := 0
	for _, k := range lookupKeys {
		if _, err := dict.Search(k); err == nil {
			hits++
		}
	}
	searchElapsed := time.Since(ts)

	log.Printf("inserted %d keys in %v (%.0f ns/op)", len(keys), insertElapsed, float64(insertElapsed.Nanoseconds())/float64(len(keys)))
	log.Printf("searched %d keys in %v (%.0f ns/op), %d hits", len(lookupKeys), searchElapsed, float64(searchElapsed.Nanoseconds())/float64(len(lookupKeys)), hits)
}

func permutedKeys(prng *rand.Rand, n int) []pdict.Int32Key {
	keys := make([]pdict.Int32Key, n)
	for i := range keys {
		keys[i] = pdict.Int32Key(i)
	}
	prng.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys
}
