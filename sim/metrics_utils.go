// sim/metrics_utils.go
package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// waitStatsQuantile is the upper quantile reported for waiting times.
const waitStatsQuantile = 0.9

// waitStats returns the mean and the 90th percentile of waits.
// Both are zero for an empty sample.
func waitStats(waits []float64) (mean, p90 float64) {
	if len(waits) == 0 {
		return 0, 0
	}
	sorted := slices.Clone(waits)
	slices.Sort(sorted)
	return stat.Mean(sorted, nil), stat.Quantile(waitStatsQuantile, stat.Empirical, sorted, nil)
}

// SaveJSON writes the summary as indented JSON to fileName.
func (s *Summary) SaveJSON(fileName string) (err error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	if _, err := writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing %s: %w", fileName, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", fileName, err)
	}

	logrus.Debugf("Successfully wrote summary to '%s'", fileName)
	return nil
}
