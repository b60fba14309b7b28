package services

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	domainErrors "github.com/thomas-vilte/prdupe/internal/errors"
	"github.com/thomas-vilte/prdupe/internal/models"
	"github.com/thomas-vilte/prdupe/internal/regex"
)

// ReadPairFile reads a pair file from disk.
func ReadPairFile(path string) ([]models.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domainErrors.ErrReadPairFile.
			WithError(err).
			WithContext("path", path)
	}
	defer func() { _ = f.Close() }()

	pairs, err := ParsePairs(f)
	if err != nil {
		if appErr, ok := err.(*domainErrors.AppError); ok {
			return nil, appErr.WithContext("path", path)
		}
		return nil, err
	}
	return pairs, nil
}

// ParsePairs reads "<owner/repo> <pr1> <pr2>" lines. Blank lines and lines
// starting with # are skipped.
func ParsePairs(r io.Reader) ([]models.Pair, error) {
	var pairs []models.Pair

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pair, err := parsePairLine(line)
		if err != nil {
			return nil, domainErrors.ErrInvalidPairLine.
				WithError(err).
				WithContext("line", lineNo)
		}
		pair.Line = lineNo
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, domainErrors.ErrReadPairFile.WithError(err)
	}

	return pairs, nil
}

func parsePairLine(line string) (models.Pair, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return models.Pair{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	if !regex.RepoIdentifier.MatchString(fields[0]) {
		return models.Pair{}, fmt.Errorf("invalid repository %q", fields[0])
	}

	first, err := parsePRNumber(fields[1])
	if err != nil {
		return models.Pair{}, err
	}
	second, err := parsePRNumber(fields[2])
	if err != nil {
		return models.Pair{}, err
	}

	return models.Pair{Repo: fields[0], First: first, Second: second}, nil
}

func parsePRNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid pull request number %q", s)
	}
	return n, nil
}

// ParsePairArgs validates a pair given as separate command-line arguments.
func ParsePairArgs(repo, first, second string) (models.Pair, error) {
	if !regex.RepoIdentifier.MatchString(repo) {
		return models.Pair{}, domainErrors.ErrInvalidRepository.WithContext("repo", repo)
	}

	a, err := parsePRNumber(first)
	if err != nil {
		return models.Pair{}, domainErrors.ErrInvalidPRNumber.
			WithError(err).
			WithContext("repo", repo)
	}
	b, err := parsePRNumber(second)
	if err != nil {
		return models.Pair{}, domainErrors.ErrInvalidPRNumber.
			WithError(err).
			WithContext("repo", repo)
	}

	return models.Pair{Repo: repo, First: a, Second: b}, nil
}
