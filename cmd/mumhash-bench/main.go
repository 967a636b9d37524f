package main

import (
	goflag "flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/unkn0wn-root/mumhash"
	"github.com/unkn0wn-root/mumhash/internal/quality"
)

type options struct {
	variants        []string
	baseline        bool
	seed            uint64
	sizes           []int
	duration        time.Duration
	avalancheLens   []int
	avalancheTrials int
	keys            int
	buckets         int
	keyPrefix       string
	format          string
	out             string
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.variants, "variants", []string{"mumadd", "multilinear", "poly"}, "hasher variants to measure")
	fs.BoolVar(&o.baseline, "baseline", true, "include xxhash64 as a reference")
	fs.Uint64Var(&o.seed, "seed", 0, "seed passed to every variant")
	fs.IntSliceVar(&o.sizes, "sizes", []int{3, 8, 16, 17, 64, 1024}, "input sizes in bytes for throughput")
	fs.DurationVar(&o.duration, "duration", 200*time.Millisecond, "time spent per throughput measurement")
	fs.IntSliceVar(&o.avalancheLens, "avalanche-len", []int{4, 8, 24}, "input sizes for the avalanche test")
	fs.IntVar(&o.avalancheTrials, "avalanche-trials", 500, "random inputs per avalanche size (0 disables)")
	fs.IntVar(&o.keys, "keys", 1<<16, "sequential keys for the bucket test (0 disables)")
	fs.IntVar(&o.buckets, "buckets", 1024, "bucket count for the bucket test, a power of two")
	fs.StringVar(&o.keyPrefix, "key-prefix", "key:", "prefix of the sequential keys")
	fs.StringVar(&o.format, "format", "text", "output format: text|cbor")
	fs.StringVarP(&o.out, "out", "o", "-", "output file, - for stdout")
}

func main() {
	opts := &options{}
	opts.addFlags(pflag.CommandLine)

	klogFlags := goflag.NewFlagSet("klog", goflag.ExitOnError)
	klog.InitFlags(klogFlags)
	pflag.CommandLine.AddGoFlagSet(klogFlags)
	pflag.Parse()
	defer klog.Flush()

	if err := run(opts); err != nil {
		klog.Errorf("mumhash-bench: %v", err)
		klog.Flush()
		os.Exit(1)
	}
}

func run(opts *options) error {
	funcs, err := selectFuncs(opts)
	if err != nil {
		return err
	}

	enc, err := newEncoder(opts.format)
	if err != nil {
		return err
	}

	rep := Report{
		CPU:     describeCPU(),
		Seed:    opts.seed,
		Started: time.Now().UTC(),
	}
	klog.V(1).Infof("cpu %s (%d cores) features=%v", rep.CPU.Brand, rep.CPU.Cores, rep.CPU.Features)
	if !rep.CPU.FastMul {
		klog.Warning("no BMI2 on this CPU; the 64x64->128 multiply may be slower than usual")
	}

	var keys [][]byte
	if opts.keys > 0 {
		keys = quality.SequentialKeys(opts.keyPrefix, opts.keys)
	}

	for _, nf := range funcs {
		fr := FuncReport{Name: nf.Name}

		for _, size := range opts.sizes {
			tp := quality.Measure(nf.Fn, size, opts.duration)
			klog.V(2).Infof("%s size=%d %.2f ns/op", nf.Name, size, tp.NsPerOp)
			fr.Throughput = append(fr.Throughput, tp)
		}

		if opts.avalancheTrials > 0 {
			for _, n := range opts.avalancheLens {
				// Same inputs for every function.
				rnd := rand.New(rand.NewSource(int64(n)))
				fr.Avalanche = append(fr.Avalanche, quality.Avalanche(nf.Fn, n, opts.avalancheTrials, rnd))
			}
		}

		if len(keys) > 0 {
			d, err := quality.Buckets(nf.Fn, keys, opts.buckets)
			if err != nil {
				return errors.Wrapf(err, "bucket test with %d buckets", opts.buckets)
			}
			fr.Distribution = &d
		}

		klog.V(1).Infof("finished %s", nf.Name)
		rep.Results = append(rep.Results, fr)
	}

	w, closeFn, err := openOutput(opts.out)
	if err != nil {
		return err
	}
	if err := enc(w, rep); err != nil {
		closeFn()
		return errors.Wrap(err, "write report")
	}
	return errors.Wrap(closeFn(), "close output")
}

func selectFuncs(opts *options) ([]quality.Named, error) {
	var out []quality.Named
	for _, name := range opts.variants {
		v, err := mumhash.ParseVariant(name)
		if err != nil {
			return nil, errors.Wrap(err, "--variants")
		}
		out = append(out, quality.Named{Name: v.String(), Fn: quality.VariantFunc(v, opts.seed)})
	}
	if opts.baseline {
		bs := quality.Baselines(opts.seed)
		out = append(out, bs[len(bs)-1])
	}
	if len(out) == 0 {
		return nil, errors.New("nothing to measure")
	}
	return out, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "create %s", path)
	}
	return f, f.Close, nil
}

func describeCPU() CPUInfo {
	info := CPUInfo{
		Brand:   strings.TrimSpace(cpuid.CPU.BrandName),
		Vendor:  cpuid.CPU.VendorString,
		Cores:   cpuid.CPU.PhysicalCores,
		FastMul: cpuid.CPU.Supports(cpuid.BMI2) || runtime.GOARCH == "arm64",
	}
	for _, f := range []cpuid.FeatureID{cpuid.BMI2, cpuid.ADX, cpuid.AVX2, cpuid.ASIMD} {
		if cpuid.CPU.Supports(f) {
			info.Features = append(info.Features, f.String())
		}
	}
	if info.Brand == "" {
		info.Brand = fmt.Sprintf("unknown (%s)", info.Vendor)
	}
	return info
}
