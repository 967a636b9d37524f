package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	cbor "github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/unkn0wn-root/mumhash/internal/quality"
)

// CPUInfo is the part of cpuid's view that explains throughput differences.
type CPUInfo struct {
	Brand    string   `cbor:"brand"`
	Vendor   string   `cbor:"vendor"`
	Cores    int      `cbor:"cores"`
	Features []string `cbor:"features"`
	FastMul  bool     `cbor:"fastmul"`
}

// FuncReport holds every measurement taken for one hash function.
type FuncReport struct {
	Name         string                    `cbor:"name"`
	Throughput   []quality.Throughput      `cbor:"tp"`
	Avalanche    []quality.AvalancheReport `cbor:"av,omitempty"`
	Distribution *quality.Distribution     `cbor:"dist,omitempty"`
}

// Report is the whole run, written as text or CBOR.
type Report struct {
	CPU     CPUInfo      `cbor:"cpu"`
	Seed    uint64       `cbor:"seed"`
	Started time.Time    `cbor:"started"`
	Results []FuncReport `cbor:"results"`
}

type encodeFunc func(io.Writer, Report) error

func newEncoder(format string) (encodeFunc, error) {
	switch format {
	case "text", "":
		return writeText, nil
	case "cbor":
		return writeCBOR, nil
	}
	return nil, errors.Errorf("unknown --format %q (want text or cbor)", format)
}

func writeCBOR(w io.Writer, rep Report) error {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	em, err := opts.EncMode()
	if err != nil {
		return errors.Wrap(err, "cbor options")
	}
	return em.NewEncoder(w).Encode(rep)
}

func writeText(w io.Writer, rep Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "cpu: %s  cores: %d  features: %v\n", rep.CPU.Brand, rep.CPU.Cores, rep.CPU.Features)
	fmt.Fprintf(w, "seed: %d\n\n", rep.Seed)

	fmt.Fprintln(tw, "hash\tsize\tns/op\tMB/s\t")
	for _, fr := range rep.Results {
		for _, tp := range fr.Throughput {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.1f\t\n", fr.Name, tp.Size, tp.NsPerOp, tp.MBPerSec)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if hasAvalanche(rep) {
		fmt.Fprintln(w)
		fmt.Fprintln(tw, "hash\tlen\tmean bias\tmax bias\tworst (in,out)\t")
		for _, fr := range rep.Results {
			for _, a := range fr.Avalanche {
				fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t(%d,%d)\t\n", fr.Name, a.InputLen, a.MeanBias, a.MaxBias, a.WorstIn, a.WorstOut)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if hasDistribution(rep) {
		fmt.Fprintln(w)
		fmt.Fprintln(tw, "hash\tkeys\tbuckets\tchi2\tmax load\tempty\t")
		for _, fr := range rep.Results {
			if d := fr.Distribution; d != nil {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%d\t%d\t\n", fr.Name, d.Keys, d.Buckets, d.ChiSquare, d.MaxLoad, d.Empty)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func hasAvalanche(rep Report) bool {
	for _, fr := range rep.Results {
		if len(fr.Avalanche) > 0 {
			return true
		}
	}
	return false
}

func hasDistribution(rep Report) bool {
	for _, fr := range rep.Results {
		if fr.Distribution != nil {
			return true
		}
	}
	return false
}
