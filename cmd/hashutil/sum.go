package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/brendoncarroll/go-hashsession"
)

func init() {
	f := sumCmd.Flags()
	f.String("algo", "blake3", "hash algorithm, see the algos command")
	f.Int("length", 0, "output length in bytes, 0 for the algorithm default")
	f.Uint64("offset", 0, "start of the output, for xof algorithms")
	f.String("encoding", "hex", "output encoding: hex, base64, base64url")
	f.Int("jobs", 0, "number of files hashed at once, 0 for GOMAXPROCS")
	f.String("key", "", "hex encoded 32 byte key for blake3 keyed hashing")
	for _, key := range []string{"algo", "length", "offset", "encoding", "jobs", "key"} {
		mustBind(v, key, f.Lookup(key))
	}
}

var sumCmd = &cobra.Command{
	Use:   "sum [files...]",
	Short: "Print the digest of each file, or of stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := sumConfigFromViper(v)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = []string{"-"}
		}
		lines, err := sumPaths(context.Background(), cfg, args)
		if err != nil {
			return err
		}
		for i, line := range lines {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", line, args[i])
		}
		return nil
	},
}

// sumPaths hashes each path with its own Session, cfg.Jobs at a time.
// The results are in the same order as paths.
func sumPaths(ctx context.Context, cfg sumConfig, paths []string) ([]string, error) {
	if stdin := slices.Index(paths, "-"); stdin >= 0 && slices.Contains(paths[stdin+1:], "-") {
		return nil, errors.New("stdin (-) can only be hashed once")
	}
	out := make([]string, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Jobs)
	for i, p := range paths {
		i, p := i, p
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			digest, err := sumPath(cfg, p)
			if err != nil {
				return errors.Wrapf(err, "hashing %s", p)
			}
			out[i], err = cfg.Encoding.EncodeToString(digest)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func sumPath(cfg sumConfig, p string) ([]byte, error) {
	var r io.Reader = os.Stdin
	if p != "-" {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	defer s.Dispose()
	n, err := io.Copy(s, r)
	if err != nil {
		return nil, err
	}
	log.WithField("path", p).Debugf("read %d bytes", n)
	return extract(s, cfg)
}

func newSession(cfg sumConfig) (*hashsession.Session, error) {
	if cfg.Key != nil {
		return hashsession.NewKeyed(cfg.Backend, cfg.Key)
	}
	return hashsession.New(cfg.Backend, cfg.Algo)
}

// extract reads the configured span of output from s, and disposes it.
func extract(s *hashsession.Session, cfg sumConfig) ([]byte, error) {
	length := cfg.Length
	if length == 0 {
		length = s.Algorithm().Size()
	}
	if cfg.Offset == 0 {
		return s.Digest(hashsession.WithLength(length))
	}
	r, err := s.Reader()
	if err != nil {
		return nil, err
	}
	defer r.Dispose()
	if err := r.SetPosition(cfg.Offset); err != nil {
		return nil, err
	}
	return r.ReadN(length)
}
