// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"fmt"
)

// Failure carries a computation failure that is not itself an error
// through the next(err) callback. Recover the value with errors.As.
type Failure[E any] struct {
	Value E
}

func (f *Failure[E]) Error() string {
	return fmt.Sprintf("hyper: computation failed: %v", f.Value)
}

// toError returns e when it is a non-nil error and wraps it otherwise.
func toError[E any](e E) error {
	if err, ok := any(e).(error); ok && err != nil {
		return err
	}
	return &Failure[E]{Value: e}
}
