package race

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thunderalley/league-manager-go/pkg/model"
)

// terminalCollector prompts for the finishing order on the terminal, one
// car per position. Entering "dnq" ends collection early and marks every
// remaining car DNQ.
type terminalCollector struct {
	in  *bufio.Scanner
	out io.Writer
}

func (c *terminalCollector) Collect(startingGrid []model.GridEntry) ([]model.RawFinish, error) {
	fmt.Fprintln(c.out, "\nStarting Grid:")
	for _, entry := range startingGrid {
		fmt.Fprintf(c.out, "%3d  #%-3d %-24s %s\n",
			entry.StartingPosition, entry.CarNumber, entry.Driver, entry.Team)
	}

	available := make(map[int]bool, len(startingGrid))
	for _, entry := range startingGrid {
		available[entry.CarNumber] = true
	}

	results := make([]model.RawFinish, 0, len(startingGrid))
	fmt.Fprintf(c.out, "\nEnter finishing positions for all %d cars (or 'dnq' to mark the rest DNQ):\n",
		len(startingGrid))
	for pos := 1; pos <= len(startingGrid); pos++ {
		car, stop := c.promptCar(pos, available)
		if stop {
			break
		}
		turnsLed := c.promptInt(
			fmt.Sprintf("Enter number of turns led for car %d (0 if none): ", car), 0)
		results = append(results, model.RawFinish{
			CarNumber: car,
			Finish:    model.Position(pos),
			TurnsLed:  turnsLed,
		})
		delete(available, car)
		fmt.Fprintln(c.out)
	}

	// remaining cars did not qualify, in grid order
	for _, entry := range startingGrid {
		if available[entry.CarNumber] {
			results = append(results, model.RawFinish{
				CarNumber: entry.CarNumber,
				Finish:    model.DNQ,
			})
		}
	}
	return results, nil
}

func (c *terminalCollector) promptCar(pos int, available map[int]bool) (car int, stop bool) {
	for {
		fmt.Fprintf(c.out, "Enter car number for position %d: ", pos)
		line, ok := c.readLine()
		if !ok || strings.EqualFold(line, "dnq") {
			return 0, true
		}
		car, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid number, try again.")
			continue
		}
		if !available[car] {
			fmt.Fprintln(c.out, "Car not in starting grid or already chosen, try again.")
			continue
		}
		return car, false
	}
}

func (c *terminalCollector) promptInt(prompt string, minValue int) int {
	for {
		fmt.Fprint(c.out, prompt)
		line, ok := c.readLine()
		if !ok {
			return minValue
		}
		val, err := strconv.Atoi(line)
		if err != nil || val < minValue {
			fmt.Fprintln(c.out, "Invalid number, try again.")
			continue
		}
		return val
	}
}

// readLine reports false once input is exhausted
func (c *terminalCollector) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
