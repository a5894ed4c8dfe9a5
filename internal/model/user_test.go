package model

import "testing"

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role UserRole
		res  Resource
		cap  Capability
		want bool
	}{
		{Student, ResourceCourses, CapRead, true},
		{Student, ResourceCourses, CapWriteOwn, false},
		{Student, ResourceEnrollments, CapWriteOwn, true},
		{Student, ResourceProgress, CapWriteOwn, true},
		{Student, ResourceProgress, CapWriteAny, false},
		{Instructor, ResourceCourses, CapWriteOwn, true},
		{Instructor, ResourceCourses, CapWriteAny, false},
		{Instructor, ResourceEnrollments, CapWriteOwn, false},
		{Instructor, ResourceSubmissions, CapWriteOwn, true},
		{Admin, ResourceCourses, CapWriteAny, true},
		{Admin, ResourceProgress, CapWriteAny, true},
	}

	for _, tc := range cases {
		if got := tc.role.Can(tc.res, tc.cap); got != tc.want {
			t.Errorf("%s.Can(%s, %s) = %v, want %v", tc.role, tc.res, tc.cap, got, tc.want)
		}
	}
}

func TestWriteAnySatisfiesWriteOwn(t *testing.T) {
	for _, res := range []Resource{ResourceCourses, ResourceEnrollments, ResourceSubmissions, ResourceProgress} {
		if !Admin.Can(res, CapWriteOwn) {
			t.Errorf("admin write-any should satisfy write-own on %s", res)
		}
	}
}

func TestValidContentType(t *testing.T) {
	for _, ct := range []ContentType{ContentVideo, ContentText, ContentDocument, ContentImage, ContentPresentation} {
		if !ValidContentType(ct) {
			t.Errorf("%s should be valid", ct)
		}
	}
	if ValidContentType("podcast") {
		t.Errorf("unknown content type should be invalid")
	}
}
