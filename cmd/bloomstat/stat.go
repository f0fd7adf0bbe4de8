package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/EndlessParadox1/epbloom/bloomfilter"
)

type report struct {
	Hash        string
	Size        int
	HashRounds  int
	Expected    int
	Count       int
	Probes      int
	Hits        int
	ExpectedBPE float64
	CurrentBPE  float64 // 0 when nothing was inserted
	ExpectedFP  float64
	CurrentFP   float64
	FillRatio   float64
}

func (r *report) observedFP() float64 {
	return float64(r.Hits) / float64(r.Probes)
}

// run inserts the lines of in, or cfg.Expected random elements when in is
// nil, then probes cfg.Probes random elements that were never inserted.
func run(cfg config, in io.Reader, logger *log.Logger) (*report, error) {
	hash, err := cfg.hashFunc()
	if err != nil {
		return nil, err
	}
	bf, err := bloomfilter.New[string](cfg.Probability, cfg.Expected, &bloomfilter.Options[string]{Hash: hash})
	if err != nil {
		return nil, err
	}
	logger.Printf("filter sized: m=%d k=%d (%s)", bf.Size(), bf.HashRounds(), humanize.Bytes(uint64(bf.Size()+7)/8))

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	inserted := make(map[string]struct{})
	add := func(e string) error {
		if err := bf.Add(e); err != nil {
			return err
		}
		inserted[e] = struct{}{}
		return nil
	}
	if in != nil {
		sc := bufio.NewScanner(in)
		for line := 1; sc.Scan(); line++ {
			if err := add(sc.Text()); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
	} else {
		for range cfg.Expected {
			if err := add(randomElement(rng)); err != nil {
				return nil, err
			}
		}
	}
	logger.Printf("inserted %s elements (%s distinct)", humanize.Comma(int64(bf.Count())), humanize.Comma(int64(len(inserted))))

	hits := 0
	for probed := 0; probed < cfg.Probes; {
		e := randomElement(rng)
		if _, ok := inserted[e]; ok {
			continue
		}
		ok, err := bf.Contains(e)
		if err != nil {
			return nil, err
		}
		if ok {
			hits++
		}
		probed++
	}
	logger.Printf("probed %s absent elements, %s false positives", humanize.Comma(int64(cfg.Probes)), humanize.Comma(int64(hits)))

	rep := &report{
		Hash:        cfg.Hash,
		Size:        bf.Size(),
		HashRounds:  bf.HashRounds(),
		Expected:    bf.ExpectedCount(),
		Count:       bf.Count(),
		Probes:      cfg.Probes,
		Hits:        hits,
		ExpectedBPE: bf.ExpectedBitsPerElement(),
		ExpectedFP:  bf.ExpectedFalsePositiveProbability(),
		CurrentFP:   bf.CurrentFalsePositiveProbability(),
		FillRatio:   bf.FillRatio(),
	}
	if bpe, err := bf.CurrentBitsPerElement(); err == nil {
		rep.CurrentBPE = bpe
	}
	return rep, nil
}

func randomElement(rng *rand.Rand) string {
	return strconv.FormatUint(rng.Uint64(), 16)
}

func (r *report) render(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"metric", "value"})

	currentBPE := "n/a"
	if r.Count > 0 {
		currentBPE = strconv.FormatFloat(r.CurrentBPE, 'f', 3, 64)
	}
	tbl.AppendRows([]table.Row{
		{"hash", r.Hash},
		{"bits (m)", humanize.Comma(int64(r.Size))},
		{"memory", humanize.Bytes(uint64(r.Size+7) / 8)},
		{"hash rounds (k)", r.HashRounds},
		{"expected elements", humanize.Comma(int64(r.Expected))},
		{"inserted elements", humanize.Comma(int64(r.Count))},
		{"bits/elem expected", strconv.FormatFloat(r.ExpectedBPE, 'f', 3, 64)},
		{"bits/elem current", currentBPE},
		{"fp expected", strconv.FormatFloat(r.ExpectedFP, 'g', 4, 64)},
		{"fp current", strconv.FormatFloat(r.CurrentFP, 'g', 4, 64)},
		{"fp observed", fmt.Sprintf("%.4g (%d/%d)", r.observedFP(), r.Hits, r.Probes)},
		{"fill ratio", strconv.FormatFloat(r.FillRatio, 'f', 4, 64)},
	})
	tbl.Render()
}
