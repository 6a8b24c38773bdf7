// Package art draws the gallows.
package art

import "strings"

// stages runs from the empty gallows to the full figure.
var stages = [...]string{
	`
  --------
  |      |
  |
  |
  |
  |
  -`,
	`
  --------
  |      |
  |
  |
  |
  |
  -`,
	`
  --------
  |      |
  |      O
  |
  |
  |
  -`,
	`
  --------
  |      |
  |      O
  |      |
  |      |
  |
  -`,
	`
  --------
  |      |
  |      O
  |     \|
  |      |
  |
  -`,
	`
  --------
  |      |
  |      O
  |     \|/
  |      |
  |
  -`,
	`
  --------
  |      |
  |      O
  |     \|/
  |      |
  |     /
  -`,
	`
  --------
  |      |
  |      O
  |     \|/
  |      |
  |     / \
  -`,
	`
  --------
  |      |
  |      O
  |     \|/
  |      |
  |     / \
  -`,
}

// Stages is the number of drawings.
const Stages = len(stages)

// Stage maps the remaining tries onto a drawing index: maxTries left is
// the empty gallows, 0 left is the full figure.
func Stage(triesLeft, maxTries int) int {
	if maxTries <= 0 {
		return Stages - 1
	}
	if triesLeft > maxTries {
		triesLeft = maxTries
	}
	if triesLeft < 0 {
		triesLeft = 0
	}
	return (maxTries - triesLeft) * (Stages - 1) / maxTries
}

// Gallows returns the drawing for the remaining tries, without the leading
// newline.
func Gallows(triesLeft, maxTries int) string {
	return strings.TrimPrefix(stages[Stage(triesLeft, maxTries)], "\n")
}
