// Package disasm renders ROM images as assembly listings and
// instruction tallies.
package disasm

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/jszwec/csvutil"

	"github.com/mw8080/emu/i8080/isa"
)

// Print writes a listing of image to w, one instruction per line with
// its address. org is the address the image loads at. A trailing
// instruction cut off by the end of the image renders as data bytes.
func Print(w io.Writer, image []byte, org uint16) error {
	for pc := 0; pc < len(image); {
		in, err := isa.Decode(image, uint16(pc))
		if err != nil {
			for ; pc < len(image); pc++ {
				if _, err := fmt.Fprintf(w, "%04x  db 0x%02x\n", org+uint16(pc), image[pc]); err != nil {
					return err
				}
			}
			return nil
		}

		if _, err := fmt.Fprintf(w, "%04x  %s\n", org+uint16(pc), in.String()); err != nil {
			return err
		}
		pc += in.Size()
	}
	return nil
}

// Stat is one operation's tally across an image. Cycles are the
// not-taken times for conditional calls and returns.
type Stat struct {
	Op     string `csv:"op"`
	Count  int    `csv:"count"`
	Bytes  int    `csv:"bytes"`
	Cycles int    `csv:"cycles"`
}

// Stats tallies the instructions in image: how often each operation
// appears and how much space and time it accounts for. A truncated
// tail is tallied as data bytes under the op "db". Rows are ordered by
// descending count, then by name.
func Stats(image []byte) []Stat {
	type tally struct {
		count, bytes, cycles int
	}
	tallies := map[string]*tally{}

	db := 0
	for pc := 0; pc < len(image); {
		in, err := isa.Decode(image, uint16(pc))
		if err != nil {
			db = len(image) - pc
			break
		}

		t := tallies[in.Op.String()]
		if t == nil {
			t = &tally{}
			tallies[in.Op.String()] = t
		}
		t.count++
		t.bytes += in.Size()
		t.cycles += in.Cycles()
		pc += in.Size()
	}
	if db > 0 {
		tallies["db"] = &tally{count: db, bytes: db}
	}

	stats := make([]Stat, 0, len(tallies))
	for op, t := range tallies {
		stats = append(stats, Stat{Op: op, Count: t.count, Bytes: t.bytes, Cycles: t.cycles})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Op < stats[j].Op
	})
	return stats
}

// WriteStats writes tallies as CSV with a header row.
func WriteStats(w io.Writer, stats []Stat) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	encoder := csvutil.NewEncoder(csvWriter)
	for i := range stats {
		if err := encoder.Encode(&stats[i]); err != nil {
			return err
		}
	}
	return nil
}
