package utils

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// ExecuteCmd runs the cmd, handing stdout to outputCallback line by line, and
// returns the whole stdout at the end. Stderr is captured and folded into the
// error on a non-zero exit.
func ExecuteCmd(cmd *exec.Cmd, outputCallback func(string)) (string, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", err
	}

	errorBytes := bytes.Buffer{}
	cmd.Stderr = &errorBytes

	err = cmd.Start()
	if err != nil {
		return "", fmt.Errorf("start failed %s", err.Error())
	}

	var result strings.Builder

	scanner := bufio.NewScanner(stdout)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		line := scanner.Text()
		result.WriteString(line + "\n")
		if outputCallback != nil {
			outputCallback(line)
		}
	}

	err = cmd.Wait()
	if err != nil {
		return "", fmt.Errorf("execution failed error: %s,\nmessage: %s", err.Error(), errorBytes.String())
	}

	return result.String(), nil
}
