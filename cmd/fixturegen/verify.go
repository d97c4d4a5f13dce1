package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/corpus"
	"github.com/snappyswift/fixturegen/internal/manifest"
	"github.com/snappyswift/fixturegen/internal/store"
	"github.com/snappyswift/fixturegen/internal/store/diskstore"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that every fixture decodes back to its input",
	Long: `Verify the fixtures in the output directory.

This command checks:
- Every corpus entry has a fixture
- Each fixture decompresses without error
- The decompressed bytes equal the corpus input
- Checksums match the manifest (with --manifest)
- No fixture is unaccounted for (with --strict)`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

var (
	verifyStrict   bool
	verifyManifest string
)

func init() {
	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false, "fail on fixtures that match no corpus entry")
	verifyCmd.Flags().StringVar(&verifyManifest, "manifest", "", "check artifact checksums against this manifest")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	c, err := loadCodec()
	if err != nil {
		return err
	}
	cp, err := loadCorpus(c)
	if err != nil {
		return err
	}
	st, err := diskstore.New(outputDir, c)
	if err != nil {
		return err
	}
	defer st.Close()

	var m *manifest.Manifest
	if verifyManifest != "" {
		if m, err = manifest.Read(verifyManifest); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Verifying %d fixtures in %s...\n", cp.Len(), outputDir)

	errCount, err := verifyFixtures(cmd.Context(), out, st, c, cp, m, verifyStrict)
	if err != nil {
		return err
	}
	if errCount > 0 {
		return fmt.Errorf("%d fixtures failed verification", errCount)
	}

	fmt.Fprintln(out, "All fixtures verified successfully.")
	return nil
}

// verifyFixtures checks every corpus entry against its artifact in st and
// returns how many problems were printed to w.
func verifyFixtures(ctx context.Context, w io.Writer, st store.Store, c codec.Codec, cp *corpus.Corpus, m *manifest.Manifest, strict bool) (int, error) {
	var errCount int
	fail := func(name, format string, args ...any) {
		fmt.Fprintf(w, "  ERROR: %s: %s\n", name, fmt.Sprintf(format, args...))
		errCount++
	}

	for _, tc := range cp.Cases() {
		data, err := st.ReadArtifact(ctx, tc.Name)
		if errors.Is(err, store.ErrNotFound) {
			fail(tc.Name, "fixture missing")
			continue
		}
		if err != nil {
			return errCount, err
		}

		decoded, err := c.Decompress(data)
		if err != nil {
			fail(tc.Name, "decompression failed: %v", err)
			continue
		}
		if !bytes.Equal(decoded, tc.Input) {
			fail(tc.Name, "decoded %d bytes, want %d bytes matching the corpus input", len(decoded), len(tc.Input))
			continue
		}

		if m != nil {
			entry, ok := m.Lookup(tc.Name)
			switch {
			case !ok:
				fail(tc.Name, "not in manifest")
				continue
			case entry.ArtifactSHA256 != manifest.Checksum(data):
				fail(tc.Name, "artifact checksum mismatch")
				continue
			case entry.InputSHA256 != manifest.Checksum(tc.Input):
				fail(tc.Name, "input checksum mismatch")
				continue
			}
		}

		if verbose {
			fmt.Fprintf(w, "  OK: %s (%d -> %d bytes)\n", tc.Name, len(tc.Input), len(data))
		}
	}

	if strict {
		names, err := st.List(ctx)
		if err != nil {
			return errCount, err
		}
		for _, name := range names {
			if _, ok := cp.Lookup(name); !ok {
				fail(name, "fixture matches no corpus entry")
			}
		}
	}

	return errCount, nil
}
