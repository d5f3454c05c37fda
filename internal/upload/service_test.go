package upload_test

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Uploader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"schemereg/internal/submission"
	"schemereg/internal/upload"
	"schemereg/internal/upload/mocks"
	id "schemereg/pkg/domain"
	dErrors "schemereg/pkg/domain-errors"
	"schemereg/pkg/platform/modelstate"
	"schemereg/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	uploader *mocks.MockUploader
	service  *upload.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.uploader = mocks.NewMockUploader(ctrl)
	metrics := upload.NewMetrics(prometheus.NewRegistry())
	s.service = upload.NewService(
		upload.NewValidator(1024*1024, metrics),
		s.uploader,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics,
	)
}

func (s *ServiceSuite) request(filename string, content []byte) upload.Request {
	body, ct := testutil.MultipartBody(s.T(), "file", filename, content)
	return upload.Request{
		ContentType: ct,
		Body:        bytes.NewReader(body),
		Field:       "file",
		Metadata: upload.Metadata{
			SubmissionType:   submission.TypeProducer,
			SubmissionPeriod: "January to June 2026",
		},
	}
}

func (s *ServiceSuite) TestForwardsValidFile() {
	want := id.SubmissionID(uuid.New())
	s.uploader.EXPECT().
		UploadFile(gomock.Any(), upload.File{Name: "pom.csv", Content: []byte("a,b\n")}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ upload.File, md upload.Metadata) (id.SubmissionID, error) {
			s.Equal("January to June 2026", md.SubmissionPeriod)
			return want, nil
		})

	ms := modelstate.New()
	got, err := s.service.StreamFile(context.Background(), s.request("pom.csv", []byte("a,b\n")), ms)

	s.Require().NoError(err)
	s.True(ms.IsValid())
	s.Equal(want, got)
}

func (s *ServiceSuite) TestInvalidFileNeverReachesGateway() {
	s.uploader.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	ms := modelstate.New()
	got, err := s.service.StreamFile(context.Background(), s.request("pom.txt", []byte("a,b\n")), ms)

	s.Require().NoError(err)
	s.True(got.IsNil())
	s.Equal([]string{upload.MsgMustBeCSV}, ms.Errors("file"))
}

func (s *ServiceSuite) TestGatewayFailureIsReturned() {
	s.uploader.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(id.SubmissionID{}, errors.New("gateway returned 500"))

	ms := modelstate.New()
	_, err := s.service.StreamFile(context.Background(), s.request("pom.csv", []byte("a,b\n")), ms)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.True(ms.IsValid(), "downstream failures are not validation errors")
}
