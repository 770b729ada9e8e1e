package services

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaximilianIsing/PathPal/store"
)

const catalogHeader = "name,url,city,state,type,size_category,acceptance_rate," +
	"sat_50th_percentile,act_50th_percentile,tuition_in_state,tuition_out_state," +
	"room_board,graduation_rate,retention_rate,enrollment,student_faculty_ratio," +
	"region,popular_majors,median_earnings_10_years,campus_setting,test_optional," +
	"application_deadline_fall,application_fee,average_financial_aid," +
	"percent_receiving_aid,transfer_acceptance_rate,latitude,longitude," +
	"housing_available,ipeds_id"

const catalogRows = catalogHeader + "\n" +
	"\"A, B University\",https://ab.edu,Metropolis,NY,Private,Medium,0.35,1350,30," +
	"42000,42000,14000,0.82,0.91,8000,12,Northeast,\"Business, Economics\",68000," +
	"Urban,true,2025-01-01,75,25000,0.8,0.4,40.71,-74.0,true,100001\n" +
	"State College,https://state.edu,Springfield,IL,Public,Large,0.7,1150,24," +
	"11000,28000,11000,0.62,0.8,25000,18,Midwest,\"Engineering, Agriculture\",52000," +
	"Suburban,false,Rolling,50,8000,0.6,0.6,39.78,-89.65,true,100002\n" +
	"Bad Numbers Institute,https://bad.edu,Gotham,NJ,Private,Small,n/a,unknown,," +
	",,,,,,,,\"Liberal Arts\",,Rural,maybe,Varies,,,,,,,,\n"

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "catalog_test_*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	path := filepath.Join(tmpDir, "colleges.csv")
	require.NoError(t, os.WriteFile(path, []byte(catalogRows), 0644))
	return NewCatalogService(store.NewDatasetCache(path, time.Minute))
}

func TestQuerySearchByCity(t *testing.T) {
	svc := newTestCatalog(t)

	// 不区分大小写的城市匹配；带引号转义逗号的名字完整还原
	result := svc.Query("metropolis", 1, 20, time.Now())
	require.Len(t, result.Results, 1)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "A, B University", result.Results[0].Name)
	assert.Equal(t, "Metropolis, NY", result.Results[0].Location)
}

func TestQuerySearchByNameAndState(t *testing.T) {
	svc := newTestCatalog(t)

	byName := svc.Query("state col", 1, 20, time.Now())
	require.Len(t, byName.Results, 1)
	assert.Equal(t, "State College", byName.Results[0].Name)

	byState := svc.Query("nj", 1, 20, time.Now())
	require.Len(t, byState.Results, 1)
	assert.Equal(t, "Bad Numbers Institute", byState.Results[0].Name)
}

func TestQueryNoMatch(t *testing.T) {
	svc := newTestCatalog(t)

	result := svc.Query("zzznotfound", 1, 20, time.Now())
	assert.Empty(t, result.Results)
	assert.Equal(t, 0, result.Total)
}

func TestQueryIdempotent(t *testing.T) {
	svc := newTestCatalog(t)
	now := time.Now()

	first := svc.Query("", 1, 20, now)
	second := svc.Query("", 1, 20, now)
	assert.Equal(t, first, second)
}

func TestQueryDefensiveParsing(t *testing.T) {
	svc := newTestCatalog(t)

	result := svc.Query("", 1, 20, time.Now())
	require.Len(t, result.Results, 3)

	ab := result.Results[0]
	require.NotNil(t, ab.AcceptanceRate)
	assert.InDelta(t, 0.35, *ab.AcceptanceRate, 1e-9)
	require.NotNil(t, ab.SATAvg)
	assert.Equal(t, 1350, *ab.SATAvg)
	require.NotNil(t, ab.TestOptional)
	assert.True(t, *ab.TestOptional)

	// 无法解析的原始文本映射为无值，而不是零
	bad := result.Results[2]
	assert.Nil(t, bad.AcceptanceRate)
	assert.Nil(t, bad.SATAvg)
	assert.Nil(t, bad.ACTAvg)
	assert.Nil(t, bad.TestOptional)
	assert.Nil(t, bad.Enrollment)
	assert.Equal(t, "Liberal Arts", bad.PopularMajors)
}

func TestQueryPaginationInvariant(t *testing.T) {
	svc := newTestCatalog(t)
	now := time.Now()

	total := svc.Query("", 1, 20, now).Total
	require.Equal(t, 3, total)

	// 对所有合法的page/perPage，返回条数等于 min(perPage, max(0, total-(page-1)*perPage))
	for page := 1; page <= 5; page++ {
		for _, perPage := range []int{1, 2, 3, 20} {
			result := svc.Query("", page, perPage, now)
			expected := total - (page-1)*perPage
			if expected < 0 {
				expected = 0
			}
			if expected > perPage {
				expected = perPage
			}
			assert.Len(t, result.Results, expected,
				fmt.Sprintf("page=%d per_page=%d", page, perPage))
			assert.Equal(t, total, result.Total)
		}
	}
}

func TestQueryPageCoercion(t *testing.T) {
	svc := newTestCatalog(t)

	// 非法分页参数回退到默认值1和20
	result := svc.Query("", 0, -5, time.Now())
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PerPage)
	assert.Len(t, result.Results, 3)
}

func TestQueryOutOfRangePage(t *testing.T) {
	svc := newTestCatalog(t)

	result := svc.Query("", 99, 20, time.Now())
	assert.Empty(t, result.Results)
	assert.Equal(t, 3, result.Total)
}

func TestQueryStableIDs(t *testing.T) {
	svc := newTestCatalog(t)
	now := time.Now()

	// 条目id取快照内的行位置，过滤不改变id
	all := svc.Query("", 1, 20, now)
	filtered := svc.Query("springfield", 1, 20, now)
	require.Len(t, filtered.Results, 1)
	assert.Equal(t, all.Results[1].ID, filtered.Results[0].ID)
}
