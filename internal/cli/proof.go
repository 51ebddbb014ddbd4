package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/proof"
)

// keygenCommand creates the keygen command.
func (c *CLI) keygenCommand() *cobra.Command {
	var keysOut, secretOut string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "keygen <forest>",
		Short: "Create a key pair and secret from a forest",
		Long: `Keygen relabels a forest at random. The forest and its relabeled copy form
the public key pair; the relabeling is the secret.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx)
			defer runner.Close()

			g0, err := runner.LoadGraph(ctx, args[0])
			if err != nil {
				return err
			}
			keys, secret, err := runner.Keygen(ctx, g0, seed)
			if err != nil {
				return err
			}
			if err := arborio.ExportKeyPair(keys, keysOut); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write keys")
			}
			if err := arborio.ExportMapping(secret, secretOut); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write secret")
			}
			printSuccess("Generated key pair (%d vertices)", g0.VertexCount())
			printFile(keysOut)
			printFile(secretOut)
			printNextStep("Prove knowledge of the secret", "arbor prove "+keysOut+" --secret "+secretOut)
			return nil
		},
	}

	cmd.Flags().StringVarP(&keysOut, "output", "o", "public_key.json", "key pair file")
	cmd.Flags().StringVar(&secretOut, "secret-out", "secret.json", "secret mapping file")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 draws a fresh one)")

	return cmd
}

// proveOpts holds the command-line flags for the prove command.
type proveOpts struct {
	secret    string // mapping file G0 → G1; derived by matching when empty
	rounds    int    // number of commitments
	challenge string // hex challenge; random when empty
	seed      uint64 // random seed
	output    string // transcript file
}

// proveCommand creates the prove command.
func (c *CLI) proveCommand() *cobra.Command {
	var opts proveOpts

	cmd := &cobra.Command{
		Use:   "prove <keys>",
		Short: "Answer a challenge for a key pair and write the transcript",
		Long: `Prove commits to random relabelings of G0, answers each challenge bit and
writes the transcript. Without --secret the mapping G0 → G1 is found with
the matcher, so any isomorphic key pair can be proven.

Challenge bits are read from the least significant bit of the hex value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("rounds") {
				opts.rounds = c.Config.Proof.Rounds
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = c.Config.Proof.Seed
			}
			return c.runProve(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.secret, "secret", "", "secret mapping file (default: derive by matching)")
	cmd.Flags().IntVarP(&opts.rounds, "rounds", "n", pipeline.DefaultRounds, "number of rounds")
	cmd.Flags().StringVarP(&opts.challenge, "challenge", "c", "", "hex challenge (default: random)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 draws a fresh one)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "transcript.json", "transcript file")

	return cmd
}

func (c *CLI) runProve(cmd *cobra.Command, keysPath string, opts proveOpts) error {
	ctx := cmd.Context()
	runner := c.newRunner(ctx)
	defer runner.Close()

	g0, g1, err := runner.LoadKeyPair(ctx, keysPath)
	if err != nil {
		return err
	}
	popts := pipeline.ProveOptions{Rounds: opts.rounds, Challenge: opts.challenge, Seed: opts.seed}
	if opts.secret != "" {
		if popts.Secret, err = runner.LoadMapping(ctx, opts.secret); err != nil {
			return err
		}
	}

	prog := newProgress(loggerFromContext(ctx))
	t, err := runner.Prove(ctx, g0, g1, popts)
	if err != nil {
		return err
	}
	prog.done("Answered challenge", "rounds", len(t.Rounds), "id", t.ID)

	if err := writeTranscript(t, opts.output); err != nil {
		return err
	}
	printSuccess("Answered %d rounds", len(t.Rounds))
	printKeyValue("challenge", t.Challenge)
	printKeyValue("id", t.ID)
	printFile(opts.output)
	printNextStep("Verify it", "arbor verify "+keysPath+" "+opts.output)
	return nil
}

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <keys> <transcript>",
		Short: "Check a proof transcript against a key pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx)
			defer runner.Close()

			g0, g1, err := runner.LoadKeyPair(ctx, args[0])
			if err != nil {
				return err
			}
			t, err := readTranscript(args[1])
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(ctx))
			if err := runner.Verify(ctx, g0, g1, t); err != nil {
				printError("Transcript rejected")
				return err
			}
			prog.done("Verified", "rounds", len(t.Rounds), "id", t.ID)
			printSuccess("Transcript accepted (%d rounds)", len(t.Rounds))
			return nil
		},
	}
}

func writeTranscript(t *proof.Transcript[graph.Label], path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode transcript")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func readTranscript(path string) (*proof.Transcript[graph.Label], error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "transcript %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	var t proof.Transcript[graph.Label]
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode transcript %s", path)
	}
	return &t, nil
}
