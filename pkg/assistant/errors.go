package assistant

import "errors"

// ErrClassifyTimeout reports that the model did not answer within the
// configured deadline. The orchestrator treats it as a signal to fall back
// to the pattern classifier, never as a user-facing error.
var ErrClassifyTimeout = errors.New("intent classification timed out")
