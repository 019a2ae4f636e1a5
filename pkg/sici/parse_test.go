package sici

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "sici/pkg/domain-errors"
)

type ParserSuite struct {
	suite.Suite
}

func TestParserSuite(t *testing.T) {
	suite.Run(t, new(ParserSuite))
}

func (s *ParserSuite) lax() *Sici {
	sc, err := New("lax")
	s.Require().NoError(err)
	return sc
}

func (s *ParserSuite) strict() *Sici {
	sc, err := New("strict")
	s.Require().NoError(err)
	return sc
}

func (s *ParserSuite) TestFullIdentifier() {
	sc := s.lax()
	res, err := sc.Parse("0066-4200(1990)25<>1.0.TX;2-S")
	s.Require().NoError(err)

	issn, ok := sc.Item().ISSN()
	s.True(ok)
	s.Equal("0066-4200", issn)
	chron, ok := sc.Item().Chronology()
	s.True(ok)
	s.Equal("1990", chron)
	enum, ok := sc.Item().Enumeration()
	s.True(ok)
	s.Equal("25", enum)
	_, ok = sc.Contribution().Location()
	s.False(ok, "contribution must stay empty")

	s.Equal("1", sc.Control().CSI())
	s.Equal("0", sc.Control().DPI())
	s.Equal("TX", sc.Control().MFI())
	s.Equal("2", sc.Control().Version())

	s.True(res.Valid)
	s.True(res.RoundTrip)
	s.True(res.Compared)

	raw, ok := sc.ParsedString()
	s.True(ok)
	s.Equal("0066-4200(1990)25<>1.0.TX;2-S", raw)
}

func (s *ParserSuite) TestContributionWithMissingCheckCharacter() {
	sc := s.lax()
	res, err := sc.Parse("0361-526X(2011)17:3/4<60-61:AAAAAA>2.0.ZU;2-")
	s.Require().NoError(err)

	vol, _ := sc.Item().Volume()
	iss, _ := sc.Item().Issue()
	s.Equal("17", vol)
	s.Equal("3/4", iss)

	loc, ok := sc.Contribution().Location()
	s.True(ok)
	s.Equal("60-61", loc)
	title, ok := sc.Contribution().TitleCode()
	s.True(ok)
	s.Equal("AAAAAA", title)

	s.Equal("2", sc.Control().CSI())

	s.True(res.Valid)
	s.False(res.RoundTrip, "the source lacks the check character the serializer regenerates")
	s.Equal("0361-526X(2011)17:3/4<60-61:AAAAAA>2.0.ZU;2-D", sc.String())
}

func (s *ParserSuite) TestInvalidISSNPrefix() {
	sc := s.lax()
	res, err := sc.Parse("0361-5265(2011)17:3/4<60-61:AAAAAA>2.0.ZU;2-")
	s.Require().NoError(err)

	s.False(res.Valid)
	s.False(res.RoundTrip)
	s.Contains(sc.Problems(), "item.issn")
}

func (s *ParserSuite) TestWholeStringRoundTrip() {
	sc := s.lax()
	res, err := sc.Parse("0095-4403(199502/03)21:3<12:WATIIB>2.0.TX;2-W")
	s.Require().NoError(err)
	s.True(res.Valid)
	s.True(res.RoundTrip)
}

func (s *ParserSuite) TestContributionDecomposition() {
	tests := []struct {
		name   string
		buffer string
		check  func(*ContributionSegment)
	}{
		{
			name:   "double colon marks local number only",
			buffer: "::12",
			check: func(c *ContributionSegment) {
				local, ok := c.LocalNumber()
				s.True(ok)
				s.Equal("12", local)
				_, ok = c.Location()
				s.False(ok)
				_, ok = c.TitleCode()
				s.False(ok)
			},
		},
		{
			name:   "single leading colon marks title code",
			buffer: ":KTSW",
			check: func(c *ContributionSegment) {
				title, ok := c.TitleCode()
				s.True(ok)
				s.Equal("KTSW", title)
				_, ok = c.Location()
				s.False(ok)
			},
		},
		{
			name:   "title code with local number",
			buffer: ":KTSW:9",
			check: func(c *ContributionSegment) {
				title, _ := c.TitleCode()
				local, _ := c.LocalNumber()
				s.Equal("KTSW", title)
				s.Equal("9", local)
			},
		},
		{
			name:   "location and title code",
			buffer: "62:KTSW",
			check: func(c *ContributionSegment) {
				loc, _ := c.Location()
				title, _ := c.TitleCode()
				s.Equal("62", loc)
				s.Equal("KTSW", title)
			},
		},
		{
			name:   "location title code and local number",
			buffer: "62:KTSW:9",
			check: func(c *ContributionSegment) {
				loc, _ := c.Location()
				title, _ := c.TitleCode()
				local, _ := c.LocalNumber()
				s.Equal("62", loc)
				s.Equal("KTSW", title)
				s.Equal("9", local)
			},
		},
		{
			name:   "colonless buffer is a bare location",
			buffer: "62",
			check: func(c *ContributionSegment) {
				loc, ok := c.Location()
				s.True(ok)
				s.Equal("62", loc)
			},
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			sc := s.lax()
			_, err := sc.Parse("0066-4200(1990)25<" + tt.buffer + ">1.0.TX;2-S")
			s.Require().NoError(err)
			tt.check(sc.Contribution())
		})
	}
}

func (s *ParserSuite) TestEnumerationDecomposition() {
	tests := []struct {
		name       string
		enum       string
		volume     string
		issue      string
		supplOrIdx string
		raw        string
	}{
		{name: "volume and issue", enum: "4:2", volume: "4", issue: "2"},
		{name: "supplement marker", enum: "4:2:+", volume: "4", issue: "2", supplOrIdx: "+"},
		{name: "index marker", enum: "4:2:*", volume: "4", issue: "2", supplOrIdx: "*"},
		{name: "third part that is no marker stays raw", enum: "4:2:3", raw: "4:2:3"},
		{name: "plain text stays raw", enum: "25", raw: "25"},
		{name: "leading colon stays raw", enum: ":2", raw: ":2"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			sc := s.lax()
			_, err := sc.Parse("1234-5679(2020)" + tt.enum + "<>1.0.ZU;2-X")
			s.Require().NoError(err)

			item := sc.Item()
			if tt.raw != "" {
				enum, ok := item.Enumeration()
				s.True(ok)
				s.Equal(tt.raw, enum)
				_, ok = item.Volume()
				s.False(ok)
				return
			}
			vol, _ := item.Volume()
			iss, _ := item.Issue()
			s.Equal(tt.volume, vol)
			s.Equal(tt.issue, iss)
			if tt.supplOrIdx != "" {
				suppl, ok := item.SupplOrIdx()
				s.True(ok)
				s.Equal(tt.supplOrIdx, suppl)
			}
		})
	}
}

func (s *ParserSuite) TestTruncatedControlBlockIsTolerated() {
	sc := s.lax()
	res, err := sc.Parse("0066-4200<>1.0")
	s.Require().NoError(err)

	s.Equal("1", sc.Control().CSI())
	s.Equal("0", sc.Control().DPI())
	s.Equal("ZU", sc.Control().MFI(), "missing mfi falls back to the default")
	s.Equal("2", sc.Control().Version())
	s.True(res.Valid)
	s.False(res.RoundTrip)
}

func (s *ParserSuite) TestMissingControlBlockDefaults() {
	sc := s.lax()
	res, err := sc.Parse("0066-4200<>")
	s.Require().NoError(err)
	s.True(res.Valid)
	s.Equal("1.0.ZU;2", sc.Control().String())
}

func (s *ParserSuite) TestLaxEmptyInput() {
	sc := s.lax()
	res, err := sc.Parse("")
	s.Require().NoError(err)
	s.False(res.Valid)
	s.False(res.Compared, "no tokenization means no round-trip verdict")
}

func (s *ParserSuite) TestLaxUnsupportedVersionStillTokenizes() {
	sc := s.lax()
	res, err := sc.Parse("0066-4200(1990)25<>1.0.TX;9-S")
	s.Require().NoError(err)

	s.False(res.Valid)
	s.Contains(sc.Problems(), "control.version")
	issn, _ := sc.Item().ISSN()
	s.Equal("0066-4200", issn)
}

func (s *ParserSuite) TestStrictEmptyInputAborts() {
	sc := s.strict()
	_, err := sc.Parse("")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ParserSuite) TestStrictUnsupportedVersionAbortsBeforeTokenization() {
	sc := s.strict()
	_, err := sc.Parse("0066-4200(1990)25<>1.0.TX;3-S")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedVersion))

	_, ok := sc.Item().ISSN()
	s.False(ok, "no attribute may be touched before the abort")
	_, ok = sc.ParsedString()
	s.False(ok)
}

func (s *ParserSuite) TestStrictInvalidAggregateAborts() {
	sc := s.strict()
	_, err := sc.Parse("0361-5265(2011)17:3/4<60-61:AAAAAA>2.0.ZU;2-")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidIdentifier))

	// The partially populated state is left in place for diagnosis.
	s.Contains(sc.Problems(), "item.issn")
}

func (s *ParserSuite) TestStrictValidInput() {
	sc := s.strict()
	res, err := sc.Parse("0066-4200(1990)25<>1.0.TX;2-S")
	s.Require().NoError(err)
	s.True(res.Valid)
	s.True(res.RoundTrip)
}

func (s *ParserSuite) TestReparseOverwritesPriorState() {
	sc := s.lax()
	_, err := sc.Parse("0066-4200(1990)25<>1.0.TX;2-S")
	s.Require().NoError(err)

	res, err := sc.Parse("0361-526X(2011)17:3/4<60-61:AAAAAA>2.0.ZU;2-D")
	s.Require().NoError(err)
	s.True(res.Valid)
	s.True(res.RoundTrip)

	_, ok := sc.Item().Enumeration()
	s.False(ok, "raw enumeration from the first parse must not survive")
	raw, _ := sc.ParsedString()
	s.Equal("0361-526X(2011)17:3/4<60-61:AAAAAA>2.0.ZU;2-D", raw)
}
