package sqliterepo

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/fsdevblog/promo-ledger/internal/domain"
	"github.com/stretchr/testify/suite"
)

type ConvertErrTestSuite struct {
	suite.Suite
}

func TestConvertErrSuite(t *testing.T) {
	suite.Run(t, new(ConvertErrTestSuite))
}

func (s *ConvertErrTestSuite) TestConvertErr() {
	cases := []struct {
		name    string
		err     error
		want    error
		wantNil bool
	}{
		{name: "nil passes through", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, want: domain.ErrRecordNotFound},
		{name: "driver error", err: errors.New("disk I/O error"), want: domain.ErrUnknown},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			got := convertErr(t.err, "finding user %s", "C00001")
			if t.wantNil {
				s.NoError(got)
				return
			}
			s.Require().ErrorIs(got, t.want)
			// префикс слоя сохраняется для логов
			s.Contains(got.Error(), "[repository/finding user C00001]")
		})
	}
}
