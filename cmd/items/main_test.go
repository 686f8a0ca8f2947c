package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/osrs-items/internal/entities/items"
	"github.com/KirkDiggler/osrs-items/internal/errors"
	"github.com/KirkDiggler/osrs-items/internal/testutils"
)

type CLITestSuite struct {
	suite.Suite
	dir    string
	outDir string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.outDir = filepath.Join(s.dir, "out")
}

// execute runs the root command against the suite's directories
func (s *CLITestSuite) execute(args ...string) (string, error) {
	// flag values outlive a single Execute
	sqlitePath, showJSON = "", false

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs(append(args,
		"--config", filepath.Join(s.dir, "none.yaml"),
		"--dir", s.outDir,
	))

	err := rootCmd.Execute()
	return stdout.String(), err
}

func (s *CLITestSuite) TestConvertShowListDelete() {
	input := filepath.Join(s.dir, "items.json")
	doc := fmt.Sprintf(`{"%d": %s, "%d": %s}`,
		testutils.DragonDaggerID, testutils.DragonDaggerJSON,
		testutils.CoinsID, testutils.CoinsJSON)
	s.Require().NoError(os.WriteFile(input, []byte(doc), 0o600))

	out, err := s.execute("convert", "--in", input)
	s.Require().NoError(err)
	s.Contains(out, "Converted 2 items into "+s.outDir)
	s.FileExists(filepath.Join(s.outDir, "995.json"))
	s.FileExists(filepath.Join(s.outDir, "1215.json"))

	out, err = s.execute("show", "1215")
	s.Require().NoError(err)
	s.Contains(out, "Dragon dagger (1215)")
	s.Contains(out, "Special attack: Puncture (25% energy)")
	s.Contains(out, "Damage x2 (two hits)")

	out, err = s.execute("list")
	s.Require().NoError(err)
	s.Equal("995\n1215\n", out)

	out, err = s.execute("delete", "995")
	s.Require().NoError(err)
	s.Contains(out, "Deleted item 995")

	_, err = s.execute("show", "995")
	s.Require().Error(err)
	s.Equal(3, errors.GetCode(err).ExitStatus())
}

func (s *CLITestSuite) TestSQLiteStore() {
	input := filepath.Join(s.dir, "coins.json")
	s.Require().NoError(os.WriteFile(input, []byte(testutils.CoinsJSON), 0o600))
	db := filepath.Join(s.dir, "store", "items.db")

	out, err := s.execute("convert", "--in", input, "--db", db)
	s.Require().NoError(err)
	s.Contains(out, "Converted 1 items into "+db)
	s.FileExists(db)
	s.NoFileExists(filepath.Join(s.outDir, "995.json"))

	out, err = s.execute("show", "995", "--json", "--db", db)
	s.Require().NoError(err)
	s.Contains(out, `"name": "Coins"`)

	out, err = s.execute("list", "--db", db)
	s.Require().NoError(err)
	s.Equal("995\n", out)
}

func (s *CLITestSuite) TestConvertRejectsInvalidInput() {
	input := filepath.Join(s.dir, "bad.json")
	s.Require().NoError(os.WriteFile(input, []byte(`{"id": 995}`), 0o600))

	_, err := s.execute("convert", "--in", input)
	s.Require().Error(err)
	s.True(errors.IsShapeMismatch(err))
	s.Equal(2, errors.GetCode(err).ExitStatus())
	s.NoFileExists(filepath.Join(s.outDir, "995.json"))
}

func (s *CLITestSuite) TestConvertMissingInput() {
	_, err := s.execute("convert", "--in", filepath.Join(s.dir, "missing.json"))
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *CLITestSuite) TestShowInvalidID() {
	_, err := s.execute("show", "whip")
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CLITestSuite) TestWriteSummary() {
	r, err := items.Decode([]byte(testutils.RuneFullHelmJSON))
	s.Require().NoError(err)

	var buf bytes.Buffer
	writeSummary(&buf, r)

	out := buf.String()
	s.Contains(out, "Rune full helm (1163)\n  A full face helmet.\n")
	s.Contains(out, "Flags: tradeable, grand exchange")
	s.Contains(out, "Equipment (head)")
	s.Contains(out, "magic -6")
	s.Contains(out, "Requires defence 40")
	s.NotContains(out, "Weapon")
	s.NotContains(out, "Special attack")
}
