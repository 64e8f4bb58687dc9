package response

import (
	"github.com/jinzhu/copier"
)

// mustCopy converts between fixed struct shapes. copier only errors on
// invalid input kinds, so a failure here is a bug and must not be
// silently dropped.
func mustCopy(dst, src any) {
	if err := copier.Copy(dst, src); err != nil {
		panic(err)
	}
}
