package ontap

import "github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"

// Wire formats of the ONTAP REST API. Only the fields requested through
// the "fields" query parameter are populated.

type href struct {
	Href string `json:"href"`
}

type links struct {
	Self href  `json:"self"`
	Next *href `json:"next,omitempty"`
}

type volumeRecord struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Guarantee struct {
		Type string `json:"type"`
	} `json:"guarantee"`
	SVM struct {
		Name string `json:"name"`
	} `json:"svm"`
}

func (v volumeRecord) toVolume() cluster.Volume {
	return cluster.Volume{
		UUID:      v.UUID,
		Name:      v.Name,
		SVM:       v.SVM.Name,
		Type:      v.Type,
		Guarantee: cluster.Guarantee(v.Guarantee.Type),
	}
}

type volumeCollection struct {
	Records    []volumeRecord `json:"records"`
	NumRecords int            `json:"num_records"`
	Links      links          `json:"_links"`
}

type snapshotCollection struct {
	Records    []cluster.Snapshot `json:"records"`
	NumRecords int                `json:"num_records"`
	Links      links              `json:"_links"`
}

type clusterRecord struct {
	Name    string `json:"name"`
	Version struct {
		Full string `json:"full"`
	} `json:"version"`
}

type jobLink struct {
	UUID  string `json:"uuid"`
	Links links  `json:"_links"`
}

// jobResponse is returned by mutating calls that the cluster runs asynchronously.
type jobResponse struct {
	Job *jobLink `json:"job,omitempty"`
}

type jobRecord struct {
	UUID    string `json:"uuid"`
	State   string `json:"state"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Target  string `json:"target"`
	} `json:"error"`
}

// Query options, encoded with gophercloud.BuildQueryString.

type volumeQuery struct {
	SVM    string `q:"svm.name"`
	Name   string `q:"name"`
	Fields string `q:"fields"`
}

type snapshotQuery struct {
	VersionUUID string `q:"version_uuid"`
	Fields      string `q:"fields"`
	OrderBy     string `q:"order_by"`
	MaxRecords  int    `q:"max_records"`
}

type restoreQuery struct {
	SnapshotUUID string `q:"restore_to.snapshot.uuid"`
	ValidateOnly bool   `q:"validate_only"`
}

type fieldsQuery struct {
	Fields string `q:"fields"`
}

const (
	volumeFields   = "uuid,name,type,guarantee.type,svm.name"
	snapshotFields = "uuid,name,create_time,version_uuid"
	jobFields      = "uuid,state,message,code"
	clusterFields  = "name,version"

	snapshotPageSize = 1000
)
