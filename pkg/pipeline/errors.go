package pipeline

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/matzehuels/arbor/pkg/errors"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/proof"
)

// boundaryError converts a library error into a coded error. Errors that
// already carry a code pass through unchanged.
func boundaryError(err error, format string, args ...any) error {
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		return err
	}
	what := fmt.Sprintf(format, args...)
	switch {
	case stderrors.Is(err, os.ErrNotExist):
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s: file not found", what)
	case stderrors.Is(err, arborio.ErrFormat):
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s: malformed file", what)
	case stderrors.Is(err, proof.ErrRejected):
		return errors.Wrap(errors.ErrCodeProofRejected, err, "%s: transcript rejected", what)
	case stderrors.Is(err, proof.ErrBadSecret):
		return errors.Wrap(errors.ErrCodeInvalidMapping, err, "%s: secret does not map G0 onto G1", what)
	default:
		return errors.Classify(err)
	}
}
