package grpcapi_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/apperr"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/service"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/store/memory"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/clearance/types"
	"github.com/sobri3195/MBG-dari-sisi-kesehatan/internal/grpcapi"
)

type fixture struct {
	ctx       context.Context
	client    *grpcapi.Client
	conn      *grpc.ClientConn
	personnel types.Personnel
	clearance types.Clearance
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()

	dir := service.NewDirectory(st)
	p, err := dir.Create(ctx, types.CreatePersonnelRequest{Name: "Andi", Category: "VENDOR"})
	require.NoError(t, err)
	res, err := service.NewScreeningRecorder(st, nil).Create(ctx, types.CreateScreeningRequest{
		PersonnelID:   p.ID,
		FitnessStatus: "FIT_WITH_NOTES",
		FitnessNotes:  "mild hypertension",
		ScreenerName:  "dr. Sari",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Clearance)

	srv := grpcapi.NewServer(grpcapi.Dependencies{
		Validator:   service.NewValidator(st),
		Revoker:     service.NewRevocationAuthority(st),
		Checkpoints: service.NewCheckpointRecorder(st),
	})

	lis := bufconn.Listen(1 << 20)
	serveCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(serveCtx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &fixture{
		ctx:       ctx,
		client:    grpcapi.NewClient(conn),
		conn:      conn,
		personnel: p,
		clearance: *res.Clearance,
	}
}

func TestResolveClearance(t *testing.T) {
	f := newFixture(t)

	out, err := f.client.ResolveClearance(f.ctx, f.clearance.Code)
	require.NoError(t, err)

	fields := out.GetFields()
	assert.Equal(t, "VALID", fields["status"].GetStringValue())
	assert.Equal(t, f.clearance.ID, fields["id"].GetStringValue())
	assert.Equal(t, "FIT_WITH_NOTES", fields["fitness_status"].GetStringValue())
	assert.Equal(t, "mild hypertension", fields["fitness_notes"].GetStringValue())
	assert.Equal(t, "Andi", fields["personnel"].GetStructValue().GetFields()["name"].GetStringValue())
}

func TestResolveClearance_NotFoundCarriesReason(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.ResolveClearance(f.ctx, f.clearance.Code[:15])
	require.Error(t, err)

	st := status.Convert(err)
	assert.Equal(t, codes.NotFound, st.Code())
	require.Len(t, st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	require.True(t, ok)
	assert.Equal(t, string(apperr.CodeNotFound), info.GetReason())

	_, err = f.client.ResolveClearance(f.ctx, "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRevokeThenResolve(t *testing.T) {
	f := newFixture(t)

	out, err := f.client.RevokeClearance(f.ctx, f.clearance.ID)
	require.NoError(t, err)
	assert.Equal(t, "REVOKED", out.GetFields()["status"].GetStringValue())
	assert.NotEmpty(t, out.GetFields()["revoked_at"].GetStringValue())

	out, err = f.client.ResolveClearance(f.ctx, f.clearance.Code)
	require.NoError(t, err)
	assert.Equal(t, "REVOKED", out.GetFields()["status"].GetStringValue())

	_, err = f.client.RevokeClearance(f.ctx, "missing")
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRecordEntry(t *testing.T) {
	f := newFixture(t)

	in, err := structpb.NewStruct(map[string]any{
		"personnel_id":        f.personnel.ID,
		"clearance_id":        f.clearance.ID,
		"checkpoint_location": "Gate C",
		"temperature":         37.1,
		"triage_category":     "YELLOW",
		"decision":            "OBSERVATION",
		"checker_name":        "Budi",
	})
	require.NoError(t, err)

	out, err := f.client.RecordEntry(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "OBSERVATION", out.GetFields()["decision"].GetStringValue())
	assert.InDelta(t, 37.1, out.GetFields()["temperature"].GetNumberValue(), 1e-9)
	assert.NotEmpty(t, out.GetFields()["id"].GetStringValue())

	in.Fields["decision"] = structpb.NewStringValue("LATER")
	_, err = f.client.RecordEntry(f.ctx, in)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	in.Fields["unexpected"] = structpb.NewBoolValue(true)
	_, err = f.client.RecordEntry(f.ctx, in)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithTimeout(f.ctx, 2*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(f.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: grpcapi.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
