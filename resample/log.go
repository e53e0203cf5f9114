package resample

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LogIteration is a struct meant for serializing to a log-file, for
// debug and other purposes.
type LogIteration struct {
	Iteration int     `json:"iteration" yaml:"iteration"`
	Thread    int     `json:"thread" yaml:"thread"`
	Stat      float64 `json:"stat" yaml:"stat"`
}

func marshalLogIteration(li LogIteration) ([]byte, error) {
	return yaml.Marshal([]LogIteration{li})
}

func writeLogIteration(w io.Writer, li LogIteration) error {
	out, err := marshalLogIteration(li)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// FormatPValue renders a p-value for user-facing output. A run of k
// iterations cannot reliably resolve p-values below 1/k, so a zero
// count is reported as "< 1/k" rather than 0.
func FormatPValue(p float64, iterations int) string {
	if p == 0 && iterations > 0 {
		return fmt.Sprintf("< %v", strconv.FormatFloat(1/float64(iterations), 'g', -1, 64))
	}
	return strconv.FormatFloat(p, 'g', -1, 64)
}
