package selector

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blang/semver"
	"github.com/pkg/errors"

	"github.com/hostapklok/flare-bypasser/log"
	"github.com/hostapklok/flare-bypasser/models"
	"github.com/hostapklok/flare-bypasser/printer"
)

// Latest returns the newest release, which the API reports first.
func Latest(releases []models.Release) (models.Release, error) {
	if len(releases) == 0 {
		return models.Release{}, errors.New("no releases to select from")
	}

	first := releases[0]
	if v, err := semver.ParseTolerant(first.Tag); err == nil {
		for _, r := range releases[1:] {
			if o, err := semver.ParseTolerant(r.Tag); err == nil && o.GT(v) {
				log.L.Debugf("Release %s sorts above first entry %s, keeping API order", r.Tag, first.Tag)
			}
		}
	}
	return first, nil
}

// Interactive renders the numbered version menu and blocks until the
// operator picks a valid entry. Invalid input re-prompts without side
// effects; end of input is an error.
func Interactive(in io.Reader, out io.Writer, releases []models.Release) (models.Release, error) {
	if len(releases) == 0 {
		return models.Release{}, errors.New("no releases to select from")
	}

	printer.Versions(out, releases)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Select version to install [1-%d]: ", len(releases))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return models.Release{}, err
			}
			return models.Release{}, errors.New("no selection made")
		}

		answer := strings.TrimSpace(scanner.Text())
		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > len(releases) {
			fmt.Fprintf(out, "Invalid selection %q\n", answer)
			continue
		}
		return releases[choice-1], nil
	}
}
