// Package fs provides filesystem-backed hashing for the up-to-date check.
package fs

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mk/internal/core/domain"
	"go.trai.ch/mk/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// hashConcurrency bounds parallel file hashing for targets with many
// declared outputs.
const hashConcurrency = 8

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints targets and their output files with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashCommands returns a stable fingerprint of the target's command lines
// and environment overrides. Environment keys are sorted so map order
// cannot change the fingerprint.
func (h *Hasher) HashCommands(target *domain.Target) string {
	d := xxhash.New()
	for _, line := range target.Commands {
		_, _ = d.WriteString(line)
		_, _ = d.WriteString("\n")
	}

	keys := make([]string, 0, len(target.Environment))
	for k := range target.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = d.WriteString(k)
		_, _ = d.WriteString("=")
		_, _ = d.WriteString(target.Environment[k])
		_, _ = d.WriteString("\n")
	}

	return fmt.Sprintf("%016x", d.Sum64())
}

// HashOutputs returns the combined fingerprint of the target's declared
// output files, hashed concurrently and combined in declaration order. A
// missing output file is an error; callers treat it as stale.
func (h *Hasher) HashOutputs(target *domain.Target) (string, error) {
	sums := make([]uint64, len(target.Outputs))

	var g errgroup.Group
	g.SetLimit(hashConcurrency)
	for i, output := range target.Outputs {
		g.Go(func() error {
			sum, err := h.hashFile(output.String())
			if err != nil {
				return err
			}
			sums[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, sum := range sums {
		fmt.Fprintf(&b, "%016x", sum)
	}
	return b.String(), nil
}

func (h *Hasher) hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // paths come from the user's taskfile
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open output file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	d := xxhash.New()
	if _, err := io.Copy(d, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash output file"), "path", path)
	}
	return d.Sum64(), nil
}
