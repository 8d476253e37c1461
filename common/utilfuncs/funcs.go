package utilfuncs

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// PanicIfError stops the process when a setup step fails. It is only meant for
// command bootstrapping where there is nobody to return the error to.
func PanicIfError(err error, message string) {
	if err != nil {
		fmt.Println(message)
		fmt.Println(err.Error())
		logrus.WithError(err).Error(message)
		os.Exit(1)
	}
}
